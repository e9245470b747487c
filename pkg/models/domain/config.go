package domain

import (
	"fmt"
	"time"
)

// EndpointProfile names an analysis service the client can upload to
type EndpointProfile struct {
	Name    string
	BaseURL string
	Timeout time.Duration
}

func (p EndpointProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.BaseURL)
}
