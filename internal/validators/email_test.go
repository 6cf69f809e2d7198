package validators

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(10, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainChecker(t *testing.T) {
	checker := NewEmailDomainChecker(fakeResolver{
		mx:  map[string]bool{"barbearia.com.br": true},
		ips: map[string]bool{"so-a.test": true},
	}, time.Second)

	cases := []struct {
		email string
		want  bool
	}{
		{"ana@barbearia.com.br", true},
		{"Ana@Barbearia.COM.BR", true},
		{"joao@so-a.test", true},
		{"joao@inexistente.test", false},
		{"sem-arroba", false},
		{"@barbearia.com.br", false},
		{"ana@", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.want, checker.Valid(tc.email))
		})
	}
}
