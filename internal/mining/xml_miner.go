package mining

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/model"
)

// XMLMiner is the default Miner. It scans a descriptor's XML for import
// elements (any element whose local name starts with "import") and returns
// their text content as dependency identifiers, e.g.
//
//	<import_port_type>Fw/Cmd/CmdPortAi.xml</import_port_type>
type XMLMiner struct{}

// NewXMLMiner creates the default XML-scanning miner.
func NewXMLMiner() *XMLMiner {
	return &XMLMiner{}
}

const importPrefix = "import"

// MineDependencies implements the Miner interface.
func (m *XMLMiner) MineDependencies(ctx context.Context, descriptorPath string, id model.ModuleID, typeTag model.DescriptorType) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(descriptorPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read descriptor %s: %w", descriptorPath, err)
	}
	defer f.Close()

	var (
		identifiers []string
		inImport    bool
		text        strings.Builder
	)

	decoder := xml.NewDecoder(f)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed descriptor %s: %w", descriptorPath, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if strings.HasPrefix(t.Name.Local, importPrefix) {
				inImport = true
				text.Reset()
			}
		case xml.CharData:
			if inImport {
				text.Write(t)
			}
		case xml.EndElement:
			if inImport {
				if s := strings.TrimSpace(text.String()); s != "" {
					identifiers = append(identifiers, s)
				}
				inImport = false
			}
		}
	}

	logger.Debug("Mined descriptor imports.", "descriptor", descriptorPath, "module", id, "type", typeTag.String(), "count", len(identifiers))
	return identifiers, nil
}
