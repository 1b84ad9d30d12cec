package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		[]HazardIcon{
			{Key: "electrical", Label: "Electrical Hazard", Icon: "electrical.png"},
			{Key: "toxic_cmr", Label: "Toxic and/or CMR Compounds", Lines: []string{"Toxic and/or CMR", "Compounds"}, Icon: "toxic.png"},
			{Key: "hot_surface", Label: "Hot Surface", Icon: "hot.png"},
		},
		[]SignIcon{
			{Key: "wear_gloves", Label: "Wear Gloves", Icon: "gloves.png"},
			{Key: "wear_goggles", Label: "Wear Goggles", Icon: "goggles.png"},
			{Key: "wear_coat", Label: "Wear Coat", Icon: "coat.png"},
			{Key: "wear_mask", Label: "Wear Mask", Icon: "mask.png"},
		},
		[]SignIcon{
			{Key: "no_open_flame", Label: "No Open Flame", Icon: "flame.png"},
			{Key: "no_food", Label: "No Food", Icon: "food.png"},
			{Key: "no_phones", Label: "No Phones", Icon: "phones.png"},
		},
		[]RiskTemplate{
			{Key: "minimal", Label: "Minimal Risk", Template: "minimal.pdf"},
			{Key: "moderate", Label: "Moderate Risk", Template: "moderate.pdf"},
		},
	)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsDuplicateKeys(t *testing.T) {
	_, err := New(
		[]HazardIcon{{Key: "a", Label: "A"}, {Key: "a", Label: "A again"}},
		nil, nil,
		[]RiskTemplate{{Key: "minimal"}},
	)
	require.Error(t, err)
	assert.True(t, api.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNew_KeysAreCaseInsensitive(t *testing.T) {
	hazards := []HazardIcon{{Key: "UV_Lamp", Label: "UV Lamp", Icon: "uv.png"}}
	c, err := New(
		hazards,
		[]SignIcon{{Key: "Wear_Gloves", Label: "Wear Gloves"}},
		nil,
		[]RiskTemplate{{Key: " Minimal ", Label: "Minimal Risk"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "UV_Lamp", hazards[0].Key, "caller slice is not modified")

	h, ok := c.Hazard("UV_LAMP")
	require.True(t, ok)
	assert.Equal(t, "uv_lamp", h.Key)

	sel, err := c.Resolve(api.Request{
		Hazards:     []string{"UV_Lamp"},
		Obligations: []string{"wear_gloves"},
		Risk:        "Minimal",
	}.Normalize(), AllowEmpty())
	require.NoError(t, err)
	require.Len(t, sel.Hazards, 1)
	assert.Equal(t, "uv_lamp", sel.Hazards[0].Key)
	require.Len(t, sel.Signs, 1)
	assert.Equal(t, "minimal", sel.Risk.Key)
}

func TestNew_RejectsKeysCollidingAfterLowerCasing(t *testing.T) {
	_, err := New(
		[]HazardIcon{{Key: "Laser"}, {Key: "laser"}},
		nil, nil,
		[]RiskTemplate{{Key: "minimal"}},
	)
	assert.True(t, api.IsConfigurationError(err))
	assert.ErrorContains(t, err, "case-insensitive")
}

func TestNew_RequiresRisk(t *testing.T) {
	_, err := New(nil, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, api.IsConfigurationError(err))
}

func TestNew_TagsSignKinds(t *testing.T) {
	c := testCatalog(t)
	o, ok := c.Obligation("wear_gloves")
	require.True(t, ok)
	assert.Equal(t, Obligation, o.Kind)
	p, ok := c.Prohibition("no_food")
	require.True(t, ok)
	assert.Equal(t, Prohibition, p.Kind)
}

func TestHazardCaptionLines(t *testing.T) {
	c := testCatalog(t)
	h, _ := c.Hazard("electrical")
	assert.Equal(t, []string{"Electrical Hazard"}, h.CaptionLines())
	h, _ = c.Hazard("toxic_cmr")
	assert.Equal(t, []string{"Toxic and/or CMR", "Compounds"}, h.CaptionLines())
}

func TestListingsAreSortedByLabel(t *testing.T) {
	c := testCatalog(t)
	var labels []string
	for _, h := range c.Hazards() {
		labels = append(labels, h.Label)
	}
	assert.Equal(t, []string{"Electrical Hazard", "Hot Surface", "Toxic and/or CMR Compounds"}, labels)
	assert.Equal(t, "minimal", c.Risks()[0].Key)
}

func TestFingerprintIsStable(t *testing.T) {
	a := testCatalog(t)
	b := testCatalog(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	other, err := New(nil, nil, nil, []RiskTemplate{{Key: "minimal"}})
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), other.Fingerprint())
}

func TestResolve(t *testing.T) {
	c := testCatalog(t)

	t.Run("keeps order and drops unknown and repeated keys", func(t *testing.T) {
		sel, err := c.Resolve(api.Request{
			Hazards: []string{"hot_surface", "bogus", "electrical", "hot_surface"},
			Risk:    "moderate",
		}, AllowEmpty())
		require.NoError(t, err)
		require.Len(t, sel.Hazards, 2)
		assert.Equal(t, "hot_surface", sel.Hazards[0].Key)
		assert.Equal(t, "electrical", sel.Hazards[1].Key)
		assert.Equal(t, "moderate", sel.Risk.Key)
		assert.False(t, sel.Defaulted)
	})

	t.Run("obligations precede prohibitions and are capped at six", func(t *testing.T) {
		sel, err := c.Resolve(api.Request{
			Prohibitions: []string{"no_open_flame", "no_food", "no_phones"},
			Obligations:  []string{"wear_mask", "wear_gloves", "wear_goggles", "wear_coat"},
		}, AllowEmpty())
		require.NoError(t, err)
		require.Len(t, sel.Signs, api.MaxSigns)
		var keys []string
		for _, s := range sel.Signs {
			keys = append(keys, s.Key)
		}
		assert.Equal(t, []string{"wear_mask", "wear_gloves", "wear_goggles", "wear_coat", "no_open_flame", "no_food"}, keys)
	})

	t.Run("blank risk uses the first template", func(t *testing.T) {
		sel, err := c.Resolve(api.Request{}, AllowEmpty())
		require.NoError(t, err)
		assert.Equal(t, "minimal", sel.Risk.Key)
		assert.Empty(t, sel.Hazards)
	})

	t.Run("unknown risk is a configuration error", func(t *testing.T) {
		_, err := c.Resolve(api.Request{Risk: "extreme"}, AllowEmpty())
		require.Error(t, err)
		assert.True(t, api.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "extreme")
	})

	t.Run("empty selection policies", func(t *testing.T) {
		_, err := c.Resolve(api.Request{Hazards: []string{"bogus"}}, FailOnEmpty())
		assert.True(t, api.IsConfigurationError(err))

		sel, err := c.Resolve(api.Request{}, UseDefault(""))
		require.NoError(t, err)
		require.Len(t, sel.Hazards, 1)
		assert.Equal(t, "electrical", sel.Hazards[0].Key)
		assert.True(t, sel.Defaulted)

		sel, err = c.Resolve(api.Request{}, UseDefault("hot_surface"))
		require.NoError(t, err)
		assert.Equal(t, "hot_surface", sel.Hazards[0].Key)

		_, err = c.Resolve(api.Request{}, UseDefault("bogus"))
		assert.True(t, api.IsConfigurationError(err))
	})
}

func TestParseEmptyPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    EmptyPolicy
		wantErr bool
	}{
		{"", AllowEmpty(), false},
		{"allow", AllowEmpty(), false},
		{"fail", FailOnEmpty(), false},
		{"default", UseDefault(""), false},
		{"default:electrical", UseDefault("electrical"), false},
		{"default:", EmptyPolicy{}, true},
		{"sometimes", EmptyPolicy{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEmptyPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverSigns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"No_Open-Flame.png", "no_food_or_drink_allowed.svg", "readme.txt", "Wear-Gloves.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	signs, err := DiscoverSigns(dir, ProhibitionInfo)
	require.NoError(t, err)
	require.Len(t, signs, 3)

	assert.Equal(t, "no_open_flame", signs[0].Key)
	assert.Equal(t, "No Open Flame", signs[0].Label)
	assert.Equal(t, "No open flame.", signs[0].Info)
	assert.Equal(t, filepath.Join(dir, "No_Open-Flame.png"), signs[0].Icon)

	assert.Equal(t, "wear_gloves", signs[1].Key)
	assert.Equal(t, "Wear Gloves", signs[1].Info)

	assert.Equal(t, "no_food_or_drink_allowed", signs[2].Key)
	assert.Equal(t, "No food or drink allowed.", signs[2].Info)
}

func TestDiscoverSigns_MissingDir(t *testing.T) {
	signs, err := DiscoverSigns(filepath.Join(t.TempDir(), "absent"), nil)
	require.NoError(t, err)
	assert.Empty(t, signs)
}

func TestDefault(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ObligationDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ObligationDir, "wear_gloves.png"), []byte("x"), 0o644))

	c, err := Default(root)
	require.NoError(t, err)
	assert.Len(t, c.Hazards(), len(DefaultHazards))
	assert.Len(t, c.Obligations(), 1)
	assert.Empty(t, c.Prohibitions())

	h, ok := c.DefaultHazard()
	require.True(t, ok)
	assert.Equal(t, "electrical", h.Key)
	assert.Equal(t, filepath.Join(root, "hazards", "electrical_hazard.png"), h.Icon)
	assert.Equal(t, filepath.Join(root, "risks", "minimal_risk.pdf"), c.DefaultRisk().Template)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlData := `
root: assets
hazards:
  - key: laser
    label: Laser Radiation
    icon: hazards/laser.png
risks:
  - key: minimal
    label: Minimal Risk
    template: risks/minimal.pdf
prohibitions:
  - key: no_pets
    label: No Pets
    icon: extra/no_pets.png
`
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	h, ok := c.Hazard("laser")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "assets", "hazards", "laser.png"), h.Icon)

	p, ok := c.Prohibition("no_pets")
	require.True(t, ok)
	assert.Equal(t, "No Pets", p.Info)
	assert.Equal(t, filepath.Join(dir, "assets", "extra", "no_pets.png"), p.Icon)

	_, ok = c.Hazard("electrical")
	assert.False(t, ok)
}
