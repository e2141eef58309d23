package patientform

import (
	"github.com/jwalitptl/clinicdesk/internal/model"
)

// LabGroup is the panel a lab result is displayed under.
type LabGroup string

const (
	GroupCBC         LabGroup = "CBC"
	GroupChemistry   LabGroup = "Chemistry"
	GroupCardiac     LabGroup = "Cardiac enzymes"
	GroupABG         LabGroup = "ABG"
	GroupCoagulation LabGroup = "Coagulation"
)

// LabGroups lists the panels in display order.
var LabGroups = []LabGroup{GroupCBC, GroupChemistry, GroupCardiac, GroupABG, GroupCoagulation}

// LabInfo is display metadata for a lab field. Unit is annotation only;
// values are stored exactly as typed.
type LabInfo struct {
	Group LabGroup
	Unit  string
}

var labInfo = map[LabField]LabInfo{
	LabHemoglobin: {GroupCBC, "g/dL"},
	LabWBC:        {GroupCBC, "x10^3/uL"},
	LabPlatelets:  {GroupCBC, "x10^3/uL"},
	LabUrea:       {GroupChemistry, "mg/dL"},
	LabCreatinine: {GroupChemistry, "mg/dL"},
	LabSodium:     {GroupChemistry, "mEq/L"},
	LabPotassium:  {GroupChemistry, "mEq/L"},
	LabALT:        {GroupChemistry, "U/L"},
	LabAST:        {GroupChemistry, "U/L"},
	LabAlbumin:    {GroupChemistry, "g/dL"},
	LabBilirubin:  {GroupChemistry, "mg/dL"},
	LabTroponin:   {GroupCardiac, "ng/mL"},
	LabCKMB:       {GroupCardiac, "U/L"},
	LabPH:         {GroupABG, ""},
	LabPCO2:       {GroupABG, "mmHg"},
	LabPO2:        {GroupABG, "mmHg"},
	LabHCO3:       {GroupABG, "mEq/L"},
	LabLactate:    {GroupABG, "mmol/L"},
	LabPT:         {GroupCoagulation, "sec"},
	LabINR:        {GroupCoagulation, ""},
	LabAPTT:       {GroupCoagulation, "sec"},
}

// InfoFor returns the group and unit of a lab field.
func InfoFor(f LabField) LabInfo {
	return labInfo[f]
}

var labFields = newFieldSet(
	FieldDef[model.LabResults, LabField, string]{LabHemoglobin, "Hemoglobin", func(s *model.LabResults) *string { return &s.Hemoglobin }},
	FieldDef[model.LabResults, LabField, string]{LabWBC, "WBC", func(s *model.LabResults) *string { return &s.WBC }},
	FieldDef[model.LabResults, LabField, string]{LabPlatelets, "Platelets", func(s *model.LabResults) *string { return &s.Platelets }},
	FieldDef[model.LabResults, LabField, string]{LabUrea, "Urea", func(s *model.LabResults) *string { return &s.Urea }},
	FieldDef[model.LabResults, LabField, string]{LabCreatinine, "Creatinine", func(s *model.LabResults) *string { return &s.Creatinine }},
	FieldDef[model.LabResults, LabField, string]{LabSodium, "Sodium", func(s *model.LabResults) *string { return &s.Sodium }},
	FieldDef[model.LabResults, LabField, string]{LabPotassium, "Potassium", func(s *model.LabResults) *string { return &s.Potassium }},
	FieldDef[model.LabResults, LabField, string]{LabALT, "ALT", func(s *model.LabResults) *string { return &s.ALT }},
	FieldDef[model.LabResults, LabField, string]{LabAST, "AST", func(s *model.LabResults) *string { return &s.AST }},
	FieldDef[model.LabResults, LabField, string]{LabAlbumin, "Albumin", func(s *model.LabResults) *string { return &s.Albumin }},
	FieldDef[model.LabResults, LabField, string]{LabBilirubin, "Bilirubin", func(s *model.LabResults) *string { return &s.Bilirubin }},
	FieldDef[model.LabResults, LabField, string]{LabTroponin, "Troponin", func(s *model.LabResults) *string { return &s.Troponin }},
	FieldDef[model.LabResults, LabField, string]{LabCKMB, "CK-MB", func(s *model.LabResults) *string { return &s.CKMB }},
	FieldDef[model.LabResults, LabField, string]{LabPH, "pH", func(s *model.LabResults) *string { return &s.PH }},
	FieldDef[model.LabResults, LabField, string]{LabPCO2, "pCO2", func(s *model.LabResults) *string { return &s.PCO2 }},
	FieldDef[model.LabResults, LabField, string]{LabPO2, "pO2", func(s *model.LabResults) *string { return &s.PO2 }},
	FieldDef[model.LabResults, LabField, string]{LabHCO3, "HCO3", func(s *model.LabResults) *string { return &s.HCO3 }},
	FieldDef[model.LabResults, LabField, string]{LabLactate, "Lactate", func(s *model.LabResults) *string { return &s.Lactate }},
	FieldDef[model.LabResults, LabField, string]{LabPT, "PT", func(s *model.LabResults) *string { return &s.PT }},
	FieldDef[model.LabResults, LabField, string]{LabINR, "INR", func(s *model.LabResults) *string { return &s.INR }},
	FieldDef[model.LabResults, LabField, string]{LabAPTT, "aPTT", func(s *model.LabResults) *string { return &s.APTT }},
)
