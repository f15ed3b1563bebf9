package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/soc"
)

// SchemaAction is the corresponding action for 'schema'.
func SchemaAction(c *cli.Context) error {
	schema := jsonschema.Reflect(&soc.Manifest{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding schema")
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
