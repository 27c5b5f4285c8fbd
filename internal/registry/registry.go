// Package registry reads schema versions from the EventBridge Schema Registry.
package registry

import (
	"context"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/schemas"

	"github.com/agentstation/schemasync/internal/awsclient"
	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/logging"
)

const service = "schemas"

// SchemasAPI is the subset of *schemas.Client used here.
type SchemasAPI interface {
	ListSchemaVersions(ctx context.Context, params *schemas.ListSchemaVersionsInput, optFns ...func(*schemas.Options)) (*schemas.ListSchemaVersionsOutput, error)
	ExportSchema(ctx context.Context, params *schemas.ExportSchemaInput, optFns ...func(*schemas.Options)) (*schemas.ExportSchemaOutput, error)
}

// Client queries one registry service endpoint. It keeps no cache;
// every call goes to the registry.
type Client struct {
	api SchemasAPI
}

// New creates a registry client.
func New(api SchemasAPI) *Client {
	return &Client{api: api}
}

// ListVersions returns every positive integer version of a schema,
// ascending and de-duplicated. Version strings that are not integers are skipped.
func (c *Client) ListVersions(ctx context.Context, registryName, schemaName string) ([]int, error) {
	logger := logging.FromContext(ctx)

	paginator := schemas.NewListSchemaVersionsPaginator(c.api, &schemas.ListSchemaVersionsInput{
		RegistryName: aws.String(registryName),
		SchemaName:   aws.String(schemaName),
	})

	var versions []int
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awsclient.WrapError(service, "ListSchemaVersions", errors.KindRegistryUnavailable, err)
		}
		pages++

		for _, summary := range page.SchemaVersions {
			raw := aws.ToString(summary.SchemaVersion)
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 {
				logger.Debug().
					Str("schema_version", raw).
					Msg("Skipping non-numeric schema version")
				continue
			}
			versions = append(versions, v)
		}
	}

	slices.Sort(versions)
	versions = slices.Compact(versions)

	logger.Debug().
		Int("pages", pages).
		Ints("versions", versions).
		Msg("Listed schema versions")

	return versions, nil
}

// ExportSchema returns the draft-04 export of one schema version.
// A version the registry does not know, or an export with no content,
// fails with VersionNotFound.
func (c *Client) ExportSchema(ctx context.Context, registryName, schemaName string, version int) ([]byte, error) {
	out, err := c.api.ExportSchema(ctx, &schemas.ExportSchemaInput{
		RegistryName:  aws.String(registryName),
		SchemaName:    aws.String(schemaName),
		SchemaVersion: aws.String(strconv.Itoa(version)),
		Type:          aws.String(constants.ExportFormat),
	})
	if err != nil {
		if awsclient.IsNotFound(err) {
			return nil, &errors.VersionNotFoundError{
				Registry: registryName,
				Schema:   schemaName,
				Version:  version,
				Err:      err,
			}
		}
		return nil, awsclient.WrapError(service, "ExportSchema", errors.KindRegistryUnavailable, err)
	}

	content := aws.ToString(out.Content)
	if content == "" {
		return nil, &errors.VersionNotFoundError{
			Registry: registryName,
			Schema:   schemaName,
			Version:  version,
		}
	}

	logging.FromContext(ctx).Debug().
		Int("version", version).
		Int("bytes", len(content)).
		Msg("Exported schema")

	return []byte(content), nil
}
