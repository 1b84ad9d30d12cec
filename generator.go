// Package doorsheet composes laboratory door sheets: a risk template page
// overlaid with hazard pictograms, obligation and prohibition signs, and the
// room's contact details.
package doorsheet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/catalog"
	"github.com/flanksource/doorsheet/formatters/pdf"
	"github.com/flanksource/doorsheet/layout"
)

// Sheet is one generated door sheet
type Sheet struct {
	Name string   `json:"name"`
	Data []byte   `json:"-"`
	Page api.Size `json:"page"`
	// Plan is nil when the sheet was served from the cache
	Plan      *layout.Plan      `json:"plan,omitempty"`
	Selection catalog.Selection `json:"selection"`
	Cached    bool              `json:"cached,omitempty"`
}

// Generator renders requests against one catalog. It is safe for
// concurrent use: icons and templates are loaded once and only read
// afterwards, and every request draws on its own canvas.
type Generator struct {
	catalog *catalog.Catalog
	layout  layout.Config
	fonts   pdf.FontSet
	opts    Options
	assets  *pdf.Assets
	cache   *SheetCache

	mu        sync.Mutex
	templates map[string]*pdf.Template
}

// NewGenerator validates the layout and font configuration and opens the
// sheet cache when enabled
func NewGenerator(cat *catalog.Catalog, cfg layout.Config, fonts pdf.FontSet, opts Options) (*Generator, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := fonts.Validate(); err != nil {
		return nil, err
	}
	cache, err := NewSheetCache(opts.Cache)
	if err != nil {
		return nil, err
	}
	return &Generator{
		catalog:   cat,
		layout:    cfg,
		fonts:     fonts,
		opts:      opts,
		assets:    pdf.NewAssets(),
		cache:     cache,
		templates: map[string]*pdf.Template{},
	}, nil
}

// Catalog returns the catalog the generator resolves against
func (g *Generator) Catalog() *catalog.Catalog { return g.catalog }

// Assets returns the shared icon store
func (g *Generator) Assets() *pdf.Assets { return g.assets }

// Close releases the sheet cache
func (g *Generator) Close() error {
	return g.cache.Close()
}

// Preload reads every icon and template of the catalog so a missing asset
// fails at startup rather than on the first request that selects it
func (g *Generator) Preload() error {
	var refs []string
	for _, h := range g.catalog.Hazards() {
		refs = append(refs, h.Icon)
	}
	for _, s := range append(g.catalog.Obligations(), g.catalog.Prohibitions()...) {
		refs = append(refs, s.Icon)
	}
	if err := g.assets.Preload(refs...); err != nil {
		return err
	}
	for _, r := range g.catalog.Risks() {
		if _, err := g.template(r); err != nil {
			return err
		}
	}
	logger.Infof("preloaded %d icons and %d templates", len(refs), len(g.catalog.Risks()))
	return nil
}

// Generate renders one door sheet. Any failure aborts the request; no
// partial document is returned.
func (g *Generator) Generate(ctx context.Context, req api.Request) (*Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req = req.Normalize()

	sel, err := g.catalog.Resolve(req, g.opts.EmptyPolicy)
	if err != nil {
		return nil, err
	}

	key, err := g.cacheKey(req, sel)
	if err != nil {
		return nil, err
	}
	if sheet, err := g.cache.Get(key); err != nil {
		logger.Warnf("sheet cache lookup failed: %v", err)
	} else if sheet != nil {
		logger.Debugf("serving %s from cache", sheet.Name)
		sheet.Selection = sel
		return sheet, nil
	}

	tpl, err := g.template(sel.Risk)
	if err != nil {
		return nil, err
	}

	canvas, err := pdf.NewCanvas(tpl.Page, g.fonts, g.assets)
	if err != nil {
		return nil, err
	}
	plan, err := layout.PlanSheet(tpl.Page, sel, req, g.layout, g.assets, canvas)
	if err != nil {
		return nil, err
	}
	if err := canvas.Draw(plan.Commands...); err != nil {
		return nil, err
	}
	if g.opts.Debug {
		if err := canvas.Draw(plan.Regions.Outline()...); err != nil {
			return nil, err
		}
	}
	overlay, err := canvas.Output()
	if err != nil {
		return nil, err
	}
	data, err := tpl.Merge(overlay)
	if err != nil {
		return nil, err
	}

	// name after the groups that made it onto the sheet
	named := req
	named.ResearchGroups = lo.Map(plan.Groups, func(slot layout.ResearchGroupSlot, _ int) string {
		return slot.Name
	})
	sheet := &Sheet{
		Name:      FileName(named, sel, g.opts.LegacyNaming),
		Data:      data,
		Page:      tpl.Page,
		Plan:      plan,
		Selection: sel,
	}
	if err := g.cache.Set(key, sheet); err != nil {
		logger.Warnf("failed to cache %s: %v", sheet.Name, err)
	}
	logger.Infof("generated %s (%s risk, %d hazards, %d signs, %d bytes)",
		sheet.Name, sel.Risk.Key, len(sel.Hazards), len(sel.Signs), len(data))
	return sheet, nil
}

func (g *Generator) template(risk catalog.RiskTemplate) (*pdf.Template, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tpl, ok := g.templates[risk.Key]; ok {
		return tpl, nil
	}
	tpl, err := pdf.LoadTemplate(risk.Template)
	if err != nil {
		return nil, fmt.Errorf("risk %s: %w", risk.Key, err)
	}
	g.templates[risk.Key] = tpl
	return tpl, nil
}

// cacheKey fingerprints everything that affects the rendered bytes,
// including the size and modification time of the selected icons and
// template so a replaced file is not served from the cache
func (g *Generator) cacheKey(req api.Request, sel catalog.Selection) (string, error) {
	if !g.cache.Enabled() {
		return "", nil
	}
	req.Output = ""
	paths := lo.Map(sel.Hazards, func(h catalog.HazardIcon, _ int) string { return h.Icon })
	paths = append(paths, lo.Map(sel.Signs, func(s catalog.SignIcon, _ int) string { return s.Icon })...)
	paths = append(paths, sel.Risk.Template)
	payload, err := json.Marshal(struct {
		Request api.Request   `json:"request"`
		Catalog string        `json:"catalog"`
		Assets  []assetStamp  `json:"assets"`
		Layout  layout.Config `json:"layout"`
		Fonts   pdf.FontSet   `json:"fonts"`
		Options Options       `json:"options"`
	}{req, g.catalog.Fingerprint(), stampAssets(paths), g.layout, g.fonts, g.opts})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint request: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

type assetStamp struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mtime"`
}

// stampAssets records size and mtime per file; a file that cannot be
// stat'ed gets a zero stamp and fails later when it is loaded
func stampAssets(paths []string) []assetStamp {
	return lo.Map(paths, func(path string, _ int) assetStamp {
		stamp := assetStamp{Path: path}
		if info, err := os.Stat(path); err == nil {
			stamp.Size = info.Size()
			stamp.ModTime = info.ModTime().UnixNano()
		}
		return stamp
	})
}
