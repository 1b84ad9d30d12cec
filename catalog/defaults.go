package catalog

import (
	"path/filepath"
)

// Asset directories below the asset root
const (
	HazardDir      = "hazards"
	ObligationDir  = "obligation_signs"
	ProhibitionDir = "prohibition_signs"
	RiskDir        = "risks"
)

// DefaultHazards is the built-in hazard list. Icon paths are relative to the asset root.
var DefaultHazards = []HazardIcon{
	{Key: "electrical", Label: "Electrical Hazard", Lines: []string{"Electrical Hazard"}, Icon: "hazards/electrical_hazard.png",
		Info: "Non-covered live parts:\nVoltage > 51 V (AC) or 121 (DC) - no capacitors\nVoltage > 1000 V (AC) or 1500 (DC) - with capacitors"},
	{Key: "biosafety_level_1", Label: "Biosafety Level 1", Lines: []string{"Biosafety Level 1"}, Icon: "hazards/biosafety_hazard.png",
		Info: "Organisms of biosafety level 1 and above are present in the lab."},
	{Key: "biosafety_level_2", Label: "Biosafety Level 2", Lines: []string{"Biosafety Level 2"}, Icon: "hazards/biosafety_hazard.png",
		Info: "Organisms of biosafety level 2 and above are present in the lab."},
	{Key: "toxic_cmr", Label: "Toxic and/or CMR Compounds", Lines: []string{"Toxic and/or CMR", "Compounds"}, Icon: "hazards/toxic_cmr_compounds.png",
		Info: "The quantity of toxic or CMR compounds in the lab > 5 g. Exception: Methanol."},
	{Key: "harmful_compounds", Label: "Harmful Compounds", Lines: []string{"Harmful Compounds"}, Icon: "hazards/Harmful_Compounds.png",
		Info: "The quantity of harmful compounds in the lab > 2 L."},
	{Key: "asphyxiation_hazard", Label: "Asphyxiation Hazard", Icon: "hazards/Asphyxiation_Hazard.png",
		Info: "Cryogenic liquids volume > 20 L per 100 m³ of laboratory."},
	{Key: "compressed_gas", Label: "Compressed Gas", Icon: "hazards/Compressed_Gas.png",
		Info: "Cylinder > 10 L at 200 bars or any cylinder in a very small space."},
	{Key: "corrosive_compounds", Label: "Corrosive Compounds", Icon: "hazards/Corrosive_Compounds.png",
		Info: "The quantity of corrosive compounds (esp. GHS Cat 1A) present in the lab > 1 L."},
	{Key: "explosive_compounds", Label: "Explosive Compounds", Icon: "hazards/Explosive_Compounds.png",
		Info: "Explosive compounds are present in the laboratory."},
	{Key: "flammable_compounds", Label: "Flammable Compounds", Icon: "hazards/Flammable_Compounds.png",
		Info: "Total volume of containers with flammable compounds is:\n> 25 L in ventilated cabinet\n> 50 L in EI90 ventilated cabinet\n> 5 L in non-ventilated cabinets, or out in the lab"},
	{Key: "hot_surface", Label: "Hot Surface", Icon: "hazards/Hot_Surface.png",
		Info: "Temperature of surface > 80 °C, with exception of heating plates."},
	{Key: "ionising_radiation", Label: "Ionising Radiation", Icon: "hazards/Ionising_Radiation.png",
		Info: "Radioactive sources (sealed or unsealed) and/or X-ray sources are present in the lab."},
	{Key: "laser_radiation", Label: "Laser Radiation", Icon: "hazards/Laser_Radiation.png",
		Info: "One or more lasers of class 3B and above are present in the lab."},
	{Key: "low_temperature", Label: "Low Temperature", Icon: "hazards/Low_Temperature.png",
		Info: "Room temperature < 5 °C."},
	{Key: "magnetic_fields", Label: "Magnetic Fields", Icon: "hazards/Magnetic_Fields.png",
		Info: "0.5 mT (5 Gauss) line outside the instrument.\n'No access for people with implanted cardiac device' compulsory"},
	{Key: "nanomaterial_hazard", Label: "Nanomaterial Hazard", Icon: "hazards/Nanomaterial_Hazard.png",
		Info: "Nanomaterials in significant quantities in powder form (>1 g) are present in the laboratories."},
	{Key: "non_ionising_radiation", Label: "Non Ionising Radiation", Icon: "hazards/Non-Ionising_Radiation.png",
		Info: "Radio or microwave sources are only partially or not at all shielded."},
	{Key: "explosive_atmosphere", Label: "Explosive Atmosphere", Icon: "hazards/Explosive_Atmosphere.png",
		Info: "The lab is classified according to the ATEX directive (2014/34/EU).\n- Storage or use of flammable liquids without adequate ventilation\n- Places where dust particles < 0.5 mm are formed\n- Confined storage of flammable gases"},
	{Key: "oxidising_compounds", Label: "Oxidising Compounds", Icon: "hazards/Oxidising_Compounds.png",
		Info: "The quantity of oxidising compounds in the lab > 1 kg."},
}

// DefaultRisks is the built-in risk level list, minimal first
var DefaultRisks = []RiskTemplate{
	{Key: "minimal", Label: "Minimal Risk", Template: "risks/minimal_risk.pdf",
		Info: "- Minimal risk present.\n- Limited access to personnel.\n- Office, auditorium, kitchen."},
	{Key: "moderate", Label: "Moderate Risk", Template: "risks/moderate_risk.pdf",
		Info: "- Moderate risk present, such as limited amounts of hazardous chemicals, lasers up to class 2B, or biosafety level 1 laboratories.\n- Restricted access. Only personnel who followed the general safety training can obtain access."},
	{Key: "significant", Label: "Significant Risk", Template: "risks/significant_risk.pdf",
		Info: "- Restricted access; emergency intervention only.\n- Access not authorized; cleaning on request under supervision of lab personnel."},
}

// ProhibitionInfo holds descriptions for discovered prohibition signs, by key
var ProhibitionInfo = map[string]string{
	"no_access_to_unauthorised_personnel":                       "No access to unauthorised personnel.",
	"no_food_or_drink_allowed":                                  "No food or drink allowed.",
	"no_access_for_people_with_active_implanted_cardiac_device": "No access for people with active implanted cardiac device.",
	"no_access_for_people_with_metallic_implants":               "No access for people with metallic implants.",
	"do_not_extinguish_with_water":                              "Do not extinguish with water.",
	"no_open_flame":                                             "No open flame.",
	"no_flammable_compounds":                                    "No flammable compounds.",
	"no_active_mobile_phones":                                   "No active mobile phones.",
	"no_metallic_articles_or_watches":                           "No metallic articles or watches.",
}

// Default builds the built-in catalog with assets resolved against root.
// Obligation and prohibition signs are discovered from their directories;
// missing directories yield empty sign lists.
func Default(root string) (*Catalog, error) {
	obligations, err := DiscoverSigns(filepath.Join(root, ObligationDir), nil)
	if err != nil {
		return nil, err
	}
	prohibitions, err := DiscoverSigns(filepath.Join(root, ProhibitionDir), ProhibitionInfo)
	if err != nil {
		return nil, err
	}
	return New(resolveHazards(root, DefaultHazards), obligations, prohibitions, resolveRisks(root, DefaultRisks))
}

func resolveHazards(root string, in []HazardIcon) []HazardIcon {
	out := make([]HazardIcon, len(in))
	for i, h := range in {
		h.Lines = append([]string(nil), h.Lines...)
		h.Icon = resolve(root, h.Icon)
		out[i] = h
	}
	return out
}

func resolveRisks(root string, in []RiskTemplate) []RiskTemplate {
	out := make([]RiskTemplate, len(in))
	for i, r := range in {
		r.Template = resolve(root, r.Template)
		out[i] = r
	}
	return out
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}
