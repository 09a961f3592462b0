package adapters

import (
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/models/store"
)

func MapScanStoreToDomain(scan *store.Scan) domain.Scan {
	return domain.Scan{
		ID:         scan.ID,
		Profile:    scan.Profile,
		Platform:   domain.Platform(scan.Platform),
		Status:     domain.ScanStatus(scan.Status),
		CreatedAt:  scan.CreatedAt,
		UpdatedAt:  scan.UpdatedAt,
		LastScanAt: scan.LastScanAt,
		Error:      scan.Error,
	}
}

func MapScanDomainToApi(scan domain.Scan) api.Scan {
	out := api.Scan{
		ID:        scan.ID,
		Profile:   scan.Profile,
		Platform:  string(scan.Platform),
		Status:    string(scan.Status),
		CreatedAt: scan.CreatedAt,
		Error:     scan.Error,
	}
	if !scan.LastScanAt.IsZero() {
		t := scan.LastScanAt
		out.LastScanAt = &t
	}
	return out
}
