package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{id: "1"},
		{id: "2b1f6c8e-3a4d-4e5f-9a0b-1c2d3e4f5a6b"},
		{id: strings.Repeat("a", MaxIDLength)},
		{id: "", wantErr: true},
		{id: strings.Repeat("a", MaxIDLength+1), wantErr: true},
		{id: "shop:42", wantErr: true},
		{id: "shop 42", wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateID("shop_id", tt.id)
		if tt.wantErr {
			assert.Error(t, err, tt.id)
		} else {
			assert.NoError(t, err, tt.id)
		}
	}
}
