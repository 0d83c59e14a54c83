package orders

import (
	"encoding/xml"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderPayload_Validate(t *testing.T) {
	assert.Nil(t, CreateOrderPayload{Total: 19.99}.Validate())
	assert.Nil(t, CreateOrderPayload{OwnerID: 7, Total: 0}.Validate())

	err := CreateOrderPayload{Total: -1}.Validate()
	require.NotNil(t, err)
	assert.Equal(t, goerrors.CategoryValidation, err.Category)
}

func TestStatusPayload_Validate(t *testing.T) {
	assert.Nil(t, StatusPayload{Status: "Shipped"}.Validate())

	err := StatusPayload{}.Validate()
	require.NotNil(t, err)
	assert.Equal(t, goerrors.CategoryValidation, err.Category)
}

func TestLegacyStatusResponse_Marshal(t *testing.T) {
	out, err := xml.Marshal(legacyStatusResponse{OrderID: "12", Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, `<orderStatus><orderId>12</orderId><status>Pending</status></orderStatus>`, string(out))

	out, err = xml.Marshal(legacyStatusResponse{Status: "invalid id"})
	require.NoError(t, err)
	assert.Equal(t, `<orderStatus><status>invalid id</status></orderStatus>`, string(out))
}
