package validation

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()

	v := binding.Validator
	err := v.ValidateStruct(&samplePayload{Email: "nope", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "min length 8", details["password"])
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsUnknownError(t *testing.T) {
	details := ToDetails(assert.AnError)
	assert.Equal(t, "invalid payload", details["payload"])
}
