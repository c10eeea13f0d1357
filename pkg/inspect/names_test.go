package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveServiceName(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Fan", "B7", true},
		{"fan", "B7", true},
		{"CarbonDioxideSensor", "97", true},
		{"Carbon Dioxide Sensor", "97", true},
		{"air quality sensor", "8D", true},
		{"Lightbulb", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ResolveServiceName(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCharacteristicName(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"RotationSpeed", "29", true},
		{"rotation speed", "29", true},
		{"Active", "B0", true},
		{"CURRENTFANSTATE", "AF", true},
		{"Carbon Dioxide Level", "93", true},
		{"Brightness", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ResolveCharacteristicName(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamesForShortTypes(t *testing.T) {
	assert.Equal(t, "Fan", ServiceName("B7"))
	assert.Equal(t, "AirQualitySensor", ServiceName("8D"))
	assert.Equal(t, "FFFF", ServiceName("FFFF"))

	assert.Equal(t, "TargetFanState", CharacteristicName("BF"))
	assert.Equal(t, "StatusActive", CharacteristicName("75"))
	assert.Equal(t, "123", CharacteristicName("123"))
}

func TestParseShortType(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"29", "29", true},
		{"0x29", "29", true},
		{"b7", "B7", true},
		{"000000AF", "AF", true},
		{"0", "0", true},
		{"000000B7-0000-1000-8000-0026BB765291", "B7", true},
		{"123e4567-e89b-12d3-a456-426614174000", "123E4567-E89B-12D3-A456-426614174000", true},
		{"", "", false},
		{"0x", "", false},
		{"xyz", "", false},
		{"123456789", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseShortType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
