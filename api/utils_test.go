package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettifyName(t *testing.T) {
	assert.Equal(t, "No Open Flame", PrettifyName("no_open-flame"))
	assert.Equal(t, "Wear Safety Glasses", PrettifyName("WEAR_SAFETY_GLASSES"))
	assert.Equal(t, "", PrettifyName("__"))
}

func TestKeyFromStem(t *testing.T) {
	assert.Equal(t, "non_ionising_radiation", KeyFromStem("Non-Ionising_Radiation"))
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Quantum Optics":    "Quantum_Optics",
		"AG Müller/Schmidt": "AG_M_ller_Schmidt",
		"  lab #4 ":         "lab_4",
		"already_safe-name": "already_safe-name",
		"***":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFileName(in), in)
	}
}
