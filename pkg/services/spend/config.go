package spend

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/spf13/viper"
)

type AzureConfig struct {
	SubscriptionID string `mapstructure:"subscription_id"`
	TenantID       string `mapstructure:"tenant_id"`
	Region         string `mapstructure:"region"`
	Credentials    *azidentity.AzureCLICredential
}

// LoadAzureConfig reads the Azure collector settings from a profile
// config file (yaml/toml/json, whatever viper can parse) and attaches
// CLI credentials.
func LoadAzureConfig(profilePath string) (*AzureConfig, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config AzureConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse azure config: %w", err)
	}
	if config.SubscriptionID == "" {
		return nil, fmt.Errorf("subscription_id is required")
	}

	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	config.Credentials = cred
	return &config, nil
}
