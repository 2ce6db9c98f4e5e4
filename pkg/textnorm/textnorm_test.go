package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdvlojas/pdv-api/pkg/textnorm"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Água Mineral", "agua mineral"},
		{"CAFÉ", "cafe"},
		{"Pão de Açúcar", "pao de acucar"},
		{"  refrigerante  ", "refrigerante"},
		{"limao", "limao"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, textnorm.Normalize(c.in), "entrada: %q", c.in)
	}
}
