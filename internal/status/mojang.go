package status

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/farfania/oblivion-launcher/internal/model"
)

// Service identifies a Mojang service in the status response
type Service struct {
	Key       string
	Name      string
	Essential bool
}

// Services lists the Mojang services shown in the status tooltip, in order
var Services = []Service{
	{Key: "sessionserver.mojang.com", Name: "Multiplayer Session Service", Essential: true},
	{Key: "authserver.mojang.com", Name: "Authentication Service", Essential: true},
	{Key: "textures.minecraft.net", Name: "Minecraft Skins", Essential: false},
	{Key: "api.mojang.com", Name: "Public API", Essential: false},
	{Key: "minecraft.net", Name: "Minecraft.net", Essential: false},
	{Key: "account.mojang.com", Name: "Mojang Accounts Website", Essential: false},
}

// HTTPClient is the minimal HTTP client used by the status clients
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MojangClient fetches the Mojang service status list
type MojangClient struct {
	url        string
	httpClient HTTPClient
}

// NewMojangClient creates a client for the status endpoint at url
func NewMojangClient(url string, httpClient HTTPClient) *MojangClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &MojangClient{url: url, httpClient: httpClient}
}

// Status returns one entry per known service. Services missing from the
// response are grey.
func (c *MojangClient) Status(ctx context.Context) ([]model.ServiceStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("mojang: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mojang: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mojang: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mojang: read body: %w", err)
	}

	// The endpoint answers with a list of single entry objects
	var entries []map[string]string
	if err := jsonx.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("mojang: decode response: %w", err)
	}
	reported := make(map[string]model.StatusColor)
	for _, entry := range entries {
		for key, value := range entry {
			reported[key] = model.StatusColor(value)
		}
	}

	statuses := make([]model.ServiceStatus, 0, len(Services))
	for _, svc := range Services {
		color, ok := reported[svc.Key]
		if !ok {
			color = model.StatusGrey
		}
		statuses = append(statuses, model.ServiceStatus{
			Name:      svc.Name,
			Status:    color,
			Essential: svc.Essential,
		})
	}
	return statuses, nil
}

// Aggregate folds service statuses into one colour: red if any service is
// red, else yellow if any is yellow. Otherwise green, unless every service
// is grey.
func Aggregate(statuses []model.ServiceStatus) model.StatusColor {
	if len(statuses) == 0 {
		return model.StatusGrey
	}

	yellow := false
	greyCount := 0
	for _, s := range statuses {
		switch s.Status {
		case model.StatusRed:
			return model.StatusRed
		case model.StatusYellow:
			yellow = true
		case model.StatusGrey:
			greyCount++
		}
	}
	if yellow {
		return model.StatusYellow
	}
	if greyCount == len(statuses) {
		return model.StatusGrey
	}
	return model.StatusGreen
}

// Split separates essential from non-essential services
func Split(statuses []model.ServiceStatus) (essential, nonEssential []model.ServiceStatus) {
	for _, s := range statuses {
		if s.Essential {
			essential = append(essential, s)
		} else {
			nonEssential = append(nonEssential, s)
		}
	}
	return essential, nonEssential
}
