package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// azurePostgreSQLScope is the OAuth scope Azure AD uses to issue tokens for
// Azure Database for PostgreSQL.
const azurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// AzureTokenProvider acquires Entra ID tokens for Azure Database for
// PostgreSQL. With tenant/client/secret configured it uses Service
// Principal credentials; otherwise it falls back to the
// DefaultAzureCredential chain (environment, workload identity, managed
// identity, Azure CLI).
type AzureTokenProvider struct {
	credential  azcore.TokenCredential
	description string
}

// newAzureTokenProvider selects the credential source from the connection
// config.
func newAzureTokenProvider(config *pgasync.ConnectionConfig) (*AzureTokenProvider, error) {
	if config.AzureTenantID != "" || config.AzureClientID != "" || config.AzureClientSecret != "" {
		if config.AzureTenantID == "" || config.AzureClientID == "" || config.AzureClientSecret == "" {
			return nil, fmt.Errorf("azure service principal requires tenant ID, client ID, and client secret: %w", pgasync.ErrInvalidConfig)
		}

		cred, err := azidentity.NewClientSecretCredential(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}

		return &AzureTokenProvider{
			credential:  cred,
			description: fmt.Sprintf("AzureServicePrincipal(tenant=%s, client=%s)", config.AzureTenantID, config.AzureClientID),
		}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure default credential: %w", err)
	}

	return &AzureTokenProvider{
		credential:  cred,
		description: "AzureDefaultCredential",
	}, nil
}

// Token acquires an Entra ID token scoped to Azure PostgreSQL.
func (p *AzureTokenProvider) Token(ctx context.Context) (string, time.Time, error) {
	token, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{azurePostgreSQLScope},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("azure token acquisition failed: %w", err)
	}
	return token.Token, token.ExpiresOn, nil
}

// String returns a human-readable representation of the provider.
func (p *AzureTokenProvider) String() string {
	return p.description
}

var _ TokenProvider = (*AzureTokenProvider)(nil)
