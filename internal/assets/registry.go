package assets

// Registry lists embedded assets available at runtime.
// Update this when adding/removing curated assets.

type AssetInfo struct {
	Family  string // schema or template
	Name    string
	Version string
	Path    string // relative to the family's embed root
}

const (
	// ConfigSchemaPath is the configuration schema, relative to embedded_schemas.
	ConfigSchemaPath = "config/exportsync-config-v1.0.0.yaml"
	// PlanMarkdownTemplate renders `plan --format markdown`.
	PlanMarkdownTemplate = "report/plan.md.hbs"
)

var Registry = []AssetInfo{
	{
		Family:  "schema",
		Name:    "exportsync-config",
		Version: "1.0.0",
		Path:    ConfigSchemaPath,
	},
	{
		Family:  "template",
		Name:    "plan-markdown",
		Version: "1.0.0",
		Path:    PlanMarkdownTemplate,
	},
}
