package inspect

import (
	"testing"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	enum := &model.CharacteristicInfo{
		Name:        "Target Fan State",
		Format:      "enum",
		ValidValues: []int{0, 1},
		ValidNames:  []string{"MANUAL", "AUTO"},
	}

	tests := []struct {
		name    string
		info    *model.CharacteristicInfo
		input   string
		want    any
		wantErr bool
	}{
		{"bool true", &model.CharacteristicInfo{Format: "bool"}, "true", true, false},
		{"bool on", &model.CharacteristicInfo{Format: "bool"}, "on", true, false},
		{"bool off", &model.CharacteristicInfo{Format: "bool"}, "OFF", false, false},
		{"bool garbage", &model.CharacteristicInfo{Format: "bool"}, "maybe", nil, true},
		{"int", &model.CharacteristicInfo{Format: "int"}, "-12", int64(-12), false},
		{"int hex", &model.CharacteristicInfo{Format: "int"}, "0x10", int64(16), false},
		{"float", &model.CharacteristicInfo{Format: "float"}, " 42.5 ", 42.5, false},
		{"float garbage", &model.CharacteristicInfo{Format: "float"}, "fast", nil, true},
		{"enum name", enum, "auto", 1, false},
		{"enum code", enum, "0", 0, false},
		{"enum out of domain code", enum, "9", 9, false},
		{"enum unknown name", enum, "TURBO", nil, true},
		{"string", &model.CharacteristicInfo{Format: "string"}, "hello", "hello", false},
		{"unknown format", &model.CharacteristicInfo{Format: "tlv8"}, "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.info, tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
