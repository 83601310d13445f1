// Socialscope - Social Media Insights API Gateway
// Copyright 2026 Socialscope contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/models"
)

// LinkedIn looks up company details through a RapidAPI provider. The provider
// payload is passed through unprojected; only the query echo is added.
type LinkedIn struct {
	host   string
	apiKey string
	client *http.Client
}

// NewLinkedIn builds the LinkedIn adapter. client may be nil, in which case a
// default client with the configured timeout is used.
func NewLinkedIn(cfg config.LinkedInConfig, client *http.Client) *LinkedIn {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &LinkedIn{
		host:   cfg.Host,
		apiKey: cfg.APIKey,
		client: client,
	}
}

func (l *LinkedIn) Name() string { return "linkedin" }

func (l *LinkedIn) Execute(ctx context.Context, op Operation) models.PlatformResult {
	if l.apiKey == "" {
		return models.Failure(models.ErrorConfigMissing, "RAPIDAPI_KEY not configured")
	}
	switch op.Name {
	case OpCompanyByName:
		return l.companyByName(ctx, op.Args.CompanyName)
	default:
		return unsupported(l.Name(), op.Name)
	}
}

func (l *LinkedIn) companyByName(ctx context.Context, name string) models.PlatformResult {
	endpoint := fmt.Sprintf("%s/v1/companies/get?linkedinName=%s", baseURL(l.host), url.QueryEscape(name))

	var data interface{}
	status, err := doJSON(ctx, l.client, upstreamRequest{
		Method: http.MethodGet,
		URL:    endpoint,
		Headers: map[string]string{
			"x-rapidapi-key":  l.apiKey,
			"x-rapidapi-host": l.host,
		},
	}, &data)
	if err != nil {
		return failureFromTransport(l.Name(), err)
	}
	if status != http.StatusOK {
		return failureFromStatus(l.Name(), status)
	}

	return models.Success(models.LinkedInCompany{Query: name, Data: data})
}
