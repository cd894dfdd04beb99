package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFormat is the only front matter flavour posts use: a YAML document
// fenced by "---" lines at the very top of the file.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// SplitFrontMatter decodes the front matter block of source into v and
// returns the Markdown body that follows it. A source without front matter
// is returned unchanged and v is left untouched.
func SplitFrontMatter(source []byte, v any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(source), v, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return body, nil
}
