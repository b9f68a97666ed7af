package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "john.doe@gmail.com", want: "j***@gmail.com"},
		{in: "@example.com", want: "***@example.com"},
		{in: "not-an-email", want: "***@***"},
		{in: "trailing@", want: "***@***"},
		{in: "élodie@example.fr", want: "é***@example.fr"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskEmail(tc.in))
		})
	}
}
