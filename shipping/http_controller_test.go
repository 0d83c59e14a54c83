package shipping

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentPayload_Validate(t *testing.T) {
	valid := ShipmentPayload{Name: "Crate 7", Destination: "221B Baker Street, London"}
	assert.Nil(t, valid.Validate())

	noName := ShipmentPayload{Destination: "somewhere"}
	err := noName.Validate()
	require.NotNil(t, err)
	assert.Equal(t, goerrors.CategoryValidation, err.Category)

	noDestination := ShipmentPayload{Name: "Crate 7"}
	require.NotNil(t, noDestination.Validate())
}
