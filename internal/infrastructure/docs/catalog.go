// Package docs serves the static BRD and use-case documents from an embedded
// TOML catalog.
package docs

import (
	"context"
	_ "embed"
	"sync"

	"github.com/pelletier/go-toml/v2"

	domaindocs "fnoldesk/internal/domain/docs"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/ports"
)

//go:embed catalog.toml
var embeddedCatalog []byte

type catalogFile struct {
	BusinessRequirements domaindocs.BusinessRequirements `toml:"business_requirements"`
	UseCases             []domaindocs.UseCase            `toml:"use_cases"`
}

// Catalog implements ports.DocumentCatalog. The TOML is parsed once on first use.
type Catalog struct {
	raw []byte

	once   sync.Once
	parsed catalogFile
	err    error
}

var _ ports.DocumentCatalog = (*Catalog)(nil)

func NewCatalog() *Catalog {
	return &Catalog{raw: embeddedCatalog}
}

func (c *Catalog) load() (catalogFile, error) {
	c.once.Do(func() {
		if err := toml.Unmarshal(c.raw, &c.parsed); err != nil {
			c.err = errs.Wrap(err, "decode document catalog")
		}
	})
	return c.parsed, c.err
}

func (c *Catalog) BusinessRequirements(ctx context.Context) (domaindocs.BusinessRequirements, error) {
	if err := ctx.Err(); err != nil {
		return domaindocs.BusinessRequirements{}, err
	}
	parsed, err := c.load()
	if err != nil {
		return domaindocs.BusinessRequirements{}, err
	}
	out := parsed.BusinessRequirements
	out.Sections = append([]domaindocs.BRDSection(nil), out.Sections...)
	return out, nil
}

func (c *Catalog) UseCases(ctx context.Context) (domaindocs.UseCaseList, error) {
	if err := ctx.Err(); err != nil {
		return domaindocs.UseCaseList{}, err
	}
	parsed, err := c.load()
	if err != nil {
		return domaindocs.UseCaseList{}, err
	}
	return domaindocs.UseCaseList{UseCases: append([]domaindocs.UseCase{}, parsed.UseCases...)}, nil
}
