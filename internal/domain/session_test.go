package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		wantErr bool
		errMsg  string
	}{
		{
			name:    "new session is valid",
			session: NewSession("retirement", NewPortfolio(testBirthdate)),
		},
		{
			name:    "session without id should fail",
			session: &Session{portfolio: NewPortfolio(testBirthdate)},
			wantErr: true,
			errMsg:  "session id cannot be empty",
		},
		{
			name:    "session without portfolio should fail",
			session: &Session{ID: uuid.New()},
			wantErr: true,
			errMsg:  "session must have a portfolio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSession_Do_Serializes(t *testing.T) {
	p := newTestPortfolio(t, 0, 0)
	session := NewSession("retirement", p)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = session.Do(func(p *Portfolio) error { return p.Deposit("pension", 1) })
		}()
	}
	wg.Wait()

	err := session.Do(func(p *Portfolio) error {
		history, err := p.AccountHistory("pension")
		require.NoError(t, err)
		assert.Len(t, history, 51)
		assert.Equal(t, 50.0, p.TotalBalance())
		return nil
	})
	assert.NoError(t, err)
}

func TestSession_Do_ReturnsError(t *testing.T) {
	session := NewSession("retirement", NewPortfolio(testBirthdate))
	boom := errors.New("boom")

	assert.ErrorIs(t, session.Do(func(*Portfolio) error { return boom }), boom)
}
