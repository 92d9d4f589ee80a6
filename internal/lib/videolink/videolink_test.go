package videolink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"youtube link", "https://www.youtube.com/watch?v=x", false},
		{"bare youtube host", "https://youtube.com/watch?v=abc", false},
		{"empty link", "", false},
		{"vimeo link", "https://vimeo.com/x", true},
		{"lookalike host", "https://youtube.com.evil.io/watch", true},
		{"youtube in path only", "https://evil.io/youtube.com", true},
		{"garbage", "://not-a-url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.link)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLink)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
