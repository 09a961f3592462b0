package spend

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

const azureVendor = "Azure"

// AzureCollector reads actual cost from Azure Cost Management,
// grouped by service name.
type AzureCollector struct {
	factory *armcostmanagement.ClientFactory
	scope   string
}

func NewAzureCollector(cfg *AzureConfig) (*AzureCollector, error) {
	factory, err := armcostmanagement.NewClientFactory(cfg.Credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("create cost management client factory: %w", err)
	}

	return &AzureCollector{
		factory: factory,
		scope:   fmt.Sprintf("/subscriptions/%s", cfg.SubscriptionID),
	}, nil
}

func (c *AzureCollector) Vendor() string {
	return azureVendor
}

func (c *AzureCollector) GetSpend(ctx context.Context, days int) ([]domain.VendorSpend, error) {
	client := c.factory.NewQueryClient()

	timeFrom := time.Now().AddDate(0, 0, -days)
	timeTo := time.Now()

	exportType := armcostmanagement.ExportTypeActualCost
	granularity := armcostmanagement.GranularityTypeDaily
	timeframe := armcostmanagement.TimeframeTypeCustom
	dimension := armcostmanagement.QueryColumnTypeDimension

	params := armcostmanagement.QueryDefinition{
		Type: &exportType,
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Name: to.Ptr("ServiceName"),
					Type: &dimension,
				},
			},
		},
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &timeFrom,
			To:   &timeTo,
		},
	}

	result, err := client.Usage(ctx, c.scope, params, nil)
	if err != nil {
		return nil, fmt.Errorf("query azure costs: %w", err)
	}

	var spends []domain.VendorSpend
	for _, row := range result.Properties.Rows {
		if len(row) < 4 {
			continue
		}
		amount, ok := row[0].(float64)
		if !ok {
			continue
		}

		spends = append(spends, domain.VendorSpend{
			Vendor:    azureVendor,
			Service:   fmt.Sprintf("%v", row[2]),
			Amount:    amount,
			Currency:  fmt.Sprintf("%v", row[3]),
			StartTime: timeFrom,
			EndTime:   timeTo,
		})
	}
	return spends, nil
}
