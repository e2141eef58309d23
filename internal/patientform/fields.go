package patientform

import (
	"github.com/jwalitptl/clinicdesk/internal/model"
)

// PersonalInfoField keys a text field of the personal info section.
type PersonalInfoField string

const (
	PersonalName           PersonalInfoField = "name"
	PersonalAge            PersonalInfoField = "age"
	PersonalGender         PersonalInfoField = "gender"
	PersonalAddress        PersonalInfoField = "address"
	PersonalPhone          PersonalInfoField = "phone"
	PersonalVisitDate      PersonalInfoField = "visitDate"
	PersonalCompanionName  PersonalInfoField = "companionName"
	PersonalCompanionPhone PersonalInfoField = "companionPhone"
	PersonalSmokingDetails PersonalInfoField = "smokingDetails"
	PersonalBloodType      PersonalInfoField = "bloodType"
)

// Condition keys a medical condition flag.
type Condition string

const (
	ConditionHypertension         Condition = "htn"
	ConditionDiabetes             Condition = "dm"
	ConditionIschemicHeartDisease Condition = "ihd"
	ConditionHeartFailure         Condition = "hf"
	ConditionArrhythmia           Condition = "arrhythmia"
	ConditionLiverDisease         Condition = "liver"
	ConditionKidneyDisease        Condition = "kidney"
	ConditionChestDisease         Condition = "chest"
	ConditionThyroidDisease       Condition = "thyroid"
	ConditionCNSDisease           Condition = "cns"
	ConditionCancer               Condition = "cancer"
	ConditionSurgery              Condition = "surgery"
)

// NoteField keys a medical note.
type NoteField string

const (
	NoteHypertension         NoteField = "htn"
	NoteDiabetes             NoteField = "dm"
	NoteIschemicHeartDisease NoteField = "ihd"
	NoteHeartFailure         NoteField = "hf"
	NoteArrhythmia           NoteField = "arrhythmia"
	NoteLiverDisease         NoteField = "liver"
	NoteKidneyDisease        NoteField = "kidney"
	NoteChestDisease         NoteField = "chest"
	NoteThyroidDisease       NoteField = "thyroid"
	NoteCNSDisease           NoteField = "cns"
	NoteCancer               NoteField = "cancer"
	NoteSurgery              NoteField = "surgery"
	NoteOthers               NoteField = "others"
	NoteComplaints           NoteField = "complaints"
)

// VitalField keys an editable vital sign. The fluid balance is derived and
// has no key.
type VitalField string

const (
	VitalHeartRate        VitalField = "hr"
	VitalBloodPressure    VitalField = "bp"
	VitalTemperature      VitalField = "temp"
	VitalRespiratoryRate  VitalField = "rr"
	VitalO2Saturation     VitalField = "spo2"
	VitalGCS              VitalField = "gcs"
	VitalRandomBloodSugar VitalField = "rbs"
	VitalUOP              VitalField = "uop"
	VitalIntake           VitalField = "intake"
	VitalCVP              VitalField = "cvp"
	VitalIVC              VitalField = "ivc"
	VitalDiureticDose     VitalField = "diureticDose"
	VitalExamNotes        VitalField = "examNotes"
)

// LabField keys a lab result.
type LabField string

const (
	LabHemoglobin LabField = "hb"
	LabWBC        LabField = "wbc"
	LabPlatelets  LabField = "platelets"
	LabUrea       LabField = "urea"
	LabCreatinine LabField = "creatinine"
	LabSodium     LabField = "na"
	LabPotassium  LabField = "k"
	LabALT        LabField = "alt"
	LabAST        LabField = "ast"
	LabAlbumin    LabField = "albumin"
	LabBilirubin  LabField = "bilirubin"
	LabTroponin   LabField = "troponin"
	LabCKMB       LabField = "ckmb"
	LabPH         LabField = "ph"
	LabPCO2       LabField = "pco2"
	LabPO2        LabField = "po2"
	LabHCO3       LabField = "hco3"
	LabLactate    LabField = "lactate"
	LabPT         LabField = "pt"
	LabINR        LabField = "inr"
	LabAPTT       LabField = "aptt"
)

// ImagingField keys an imaging report.
type ImagingField string

const (
	ImagingCTBrain       ImagingField = "ctBrain"
	ImagingCTChest       ImagingField = "ctChest"
	ImagingCXR           ImagingField = "cxr"
	ImagingUltrasound    ImagingField = "ultrasound"
	ImagingDuplex        ImagingField = "duplex"
	ImagingECG           ImagingField = "ecg"
	ImagingEcho          ImagingField = "echo"
	ImagingMPI           ImagingField = "mpi"
	ImagingCTAngiography ImagingField = "ctAngiography"
	ImagingOthers        ImagingField = "others"
)

// DiagnosisField keys a free-text field of the diagnosis and treatment section.
type DiagnosisField string

const (
	DiagnosisPrimary      DiagnosisField = "diagnosis"
	DiagnosisDifferential DiagnosisField = "differentialDiagnosis"
	DiagnosisMedications  DiagnosisField = "medications"
	DiagnosisIVFluids     DiagnosisField = "ivFluids"
	DiagnosisAntibiotics  DiagnosisField = "antibiotics"
	DiagnosisOxygen       DiagnosisField = "oxygenTherapy"
	DiagnosisInfusions    DiagnosisField = "infusions"
	DiagnosisSedations    DiagnosisField = "sedations"
	DiagnosisFollowUp     DiagnosisField = "followUpPlan"
	DiagnosisNotes        DiagnosisField = "notes"
)

// DiagnosisList keys an item list of the diagnosis and treatment section.
type DiagnosisList string

const (
	ListProblems      DiagnosisList = "problems"
	ListSolutions     DiagnosisList = "solutions"
	ListTreatmentPlan DiagnosisList = "treatmentPlan"
)

type (
	PersonalInfoSection = Section[model.PersonalInfo, PersonalInfoField, string]
	ConditionsSection   = Section[model.MedicalConditions, Condition, bool]
	NotesSection        = Section[model.MedicalNotes, NoteField, string]
	VitalSignsSection   = Section[model.VitalSigns, VitalField, string]
	LabResultsSection   = Section[model.LabResults, LabField, string]
	ImagingSection      = Section[model.ImagingResults, ImagingField, string]
	DiagnosisSection    = Section[model.DiagnosisAndTreatment, DiagnosisField, string]
)

var personalInfoFields = newFieldSet(
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalName, "Name", func(s *model.PersonalInfo) *string { return &s.Name }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalAge, "Age", func(s *model.PersonalInfo) *string { return &s.Age }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalGender, "Gender", func(s *model.PersonalInfo) *string { return &s.Gender }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalAddress, "Address", func(s *model.PersonalInfo) *string { return &s.Address }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalPhone, "Phone", func(s *model.PersonalInfo) *string { return &s.Phone }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalVisitDate, "Visit date", func(s *model.PersonalInfo) *string { return &s.VisitDate }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalCompanionName, "Companion name", func(s *model.PersonalInfo) *string { return &s.CompanionName }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalCompanionPhone, "Companion phone", func(s *model.PersonalInfo) *string { return &s.CompanionPhone }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalSmokingDetails, "Smoking details", func(s *model.PersonalInfo) *string { return &s.SmokingDetails }},
	FieldDef[model.PersonalInfo, PersonalInfoField, string]{PersonalBloodType, "Blood type", func(s *model.PersonalInfo) *string { return &s.BloodType }},
)

var conditionFields = newFieldSet(
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionHypertension, "Hypertension", func(s *model.MedicalConditions) *bool { return &s.Hypertension }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionDiabetes, "Diabetes", func(s *model.MedicalConditions) *bool { return &s.Diabetes }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionIschemicHeartDisease, "Ischemic heart disease", func(s *model.MedicalConditions) *bool { return &s.IschemicHeartDisease }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionHeartFailure, "Heart failure", func(s *model.MedicalConditions) *bool { return &s.HeartFailure }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionArrhythmia, "Arrhythmia", func(s *model.MedicalConditions) *bool { return &s.Arrhythmia }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionLiverDisease, "Liver disease", func(s *model.MedicalConditions) *bool { return &s.LiverDisease }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionKidneyDisease, "Kidney disease", func(s *model.MedicalConditions) *bool { return &s.KidneyDisease }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionChestDisease, "Chest disease", func(s *model.MedicalConditions) *bool { return &s.ChestDisease }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionThyroidDisease, "Thyroid disease", func(s *model.MedicalConditions) *bool { return &s.ThyroidDisease }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionCNSDisease, "CNS disease", func(s *model.MedicalConditions) *bool { return &s.CNSDisease }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionCancer, "Cancer", func(s *model.MedicalConditions) *bool { return &s.Cancer }},
	FieldDef[model.MedicalConditions, Condition, bool]{ConditionSurgery, "Prior surgery", func(s *model.MedicalConditions) *bool { return &s.Surgery }},
)

// conditionNotes pairs each condition with the note shown while it is true.
var conditionNotes = map[Condition]NoteField{
	ConditionHypertension:         NoteHypertension,
	ConditionDiabetes:             NoteDiabetes,
	ConditionIschemicHeartDisease: NoteIschemicHeartDisease,
	ConditionHeartFailure:         NoteHeartFailure,
	ConditionArrhythmia:           NoteArrhythmia,
	ConditionLiverDisease:         NoteLiverDisease,
	ConditionKidneyDisease:        NoteKidneyDisease,
	ConditionChestDisease:         NoteChestDisease,
	ConditionThyroidDisease:       NoteThyroidDisease,
	ConditionCNSDisease:           NoteCNSDisease,
	ConditionCancer:               NoteCancer,
	ConditionSurgery:              NoteSurgery,
}

// NoteFor returns the note paired with c.
func NoteFor(c Condition) NoteField {
	return conditionNotes[c]
}

var noteFields = newFieldSet(
	FieldDef[model.MedicalNotes, NoteField, string]{NoteHypertension, "Hypertension notes", func(s *model.MedicalNotes) *string { return &s.Hypertension }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteDiabetes, "Diabetes notes", func(s *model.MedicalNotes) *string { return &s.Diabetes }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteIschemicHeartDisease, "IHD notes", func(s *model.MedicalNotes) *string { return &s.IschemicHeartDisease }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteHeartFailure, "Heart failure notes", func(s *model.MedicalNotes) *string { return &s.HeartFailure }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteArrhythmia, "Arrhythmia notes", func(s *model.MedicalNotes) *string { return &s.Arrhythmia }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteLiverDisease, "Liver disease notes", func(s *model.MedicalNotes) *string { return &s.LiverDisease }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteKidneyDisease, "Kidney disease notes", func(s *model.MedicalNotes) *string { return &s.KidneyDisease }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteChestDisease, "Chest disease notes", func(s *model.MedicalNotes) *string { return &s.ChestDisease }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteThyroidDisease, "Thyroid disease notes", func(s *model.MedicalNotes) *string { return &s.ThyroidDisease }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteCNSDisease, "CNS disease notes", func(s *model.MedicalNotes) *string { return &s.CNSDisease }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteCancer, "Cancer notes", func(s *model.MedicalNotes) *string { return &s.Cancer }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteSurgery, "Surgery notes", func(s *model.MedicalNotes) *string { return &s.Surgery }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteOthers, "Other notes", func(s *model.MedicalNotes) *string { return &s.Others }},
	FieldDef[model.MedicalNotes, NoteField, string]{NoteComplaints, "Complaints", func(s *model.MedicalNotes) *string { return &s.Complaints }},
)

var vitalFields = newFieldSet(
	FieldDef[model.VitalSigns, VitalField, string]{VitalHeartRate, "Heart rate", func(s *model.VitalSigns) *string { return &s.HeartRate }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalBloodPressure, "Blood pressure", func(s *model.VitalSigns) *string { return &s.BloodPressure }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalTemperature, "Temperature", func(s *model.VitalSigns) *string { return &s.Temperature }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalRespiratoryRate, "Respiratory rate", func(s *model.VitalSigns) *string { return &s.RespiratoryRate }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalO2Saturation, "O2 saturation", func(s *model.VitalSigns) *string { return &s.O2Saturation }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalGCS, "GCS", func(s *model.VitalSigns) *string { return &s.GCS }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalRandomBloodSugar, "Random blood sugar", func(s *model.VitalSigns) *string { return &s.RandomBloodSugar }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalUOP, "Urine output", func(s *model.VitalSigns) *string { return &s.UOP }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalIntake, "Fluid intake", func(s *model.VitalSigns) *string { return &s.Intake }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalCVP, "CVP", func(s *model.VitalSigns) *string { return &s.CVP }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalIVC, "IVC", func(s *model.VitalSigns) *string { return &s.IVC }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalDiureticDose, "Diuretic dose", func(s *model.VitalSigns) *string { return &s.DiureticDose }},
	FieldDef[model.VitalSigns, VitalField, string]{VitalExamNotes, "Examination notes", func(s *model.VitalSigns) *string { return &s.ExamNotes }},
)

var imagingFields = newFieldSet(
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingCTBrain, "CT brain", func(s *model.ImagingResults) *string { return &s.CTBrain }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingCTChest, "CT chest", func(s *model.ImagingResults) *string { return &s.CTChest }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingCXR, "Chest X-ray", func(s *model.ImagingResults) *string { return &s.CXR }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingUltrasound, "Ultrasound", func(s *model.ImagingResults) *string { return &s.Ultrasound }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingDuplex, "Duplex", func(s *model.ImagingResults) *string { return &s.Duplex }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingECG, "ECG", func(s *model.ImagingResults) *string { return &s.ECG }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingEcho, "Echo", func(s *model.ImagingResults) *string { return &s.Echo }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingMPI, "MPI", func(s *model.ImagingResults) *string { return &s.MPI }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingCTAngiography, "CT angiography", func(s *model.ImagingResults) *string { return &s.CTAngiography }},
	FieldDef[model.ImagingResults, ImagingField, string]{ImagingOthers, "Other imaging", func(s *model.ImagingResults) *string { return &s.Others }},
)

var diagnosisFields = newFieldSet(
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisPrimary, "Diagnosis", func(s *model.DiagnosisAndTreatment) *string { return &s.Diagnosis }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisDifferential, "Differential diagnosis", func(s *model.DiagnosisAndTreatment) *string { return &s.DifferentialDiagnosis }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisMedications, "Medications", func(s *model.DiagnosisAndTreatment) *string { return &s.Medications }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisIVFluids, "IV fluids", func(s *model.DiagnosisAndTreatment) *string { return &s.IVFluids }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisAntibiotics, "Antibiotics", func(s *model.DiagnosisAndTreatment) *string { return &s.Antibiotics }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisOxygen, "Oxygen therapy", func(s *model.DiagnosisAndTreatment) *string { return &s.OxygenTherapy }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisInfusions, "Infusions", func(s *model.DiagnosisAndTreatment) *string { return &s.Infusions }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisSedations, "Sedations", func(s *model.DiagnosisAndTreatment) *string { return &s.Sedations }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisFollowUp, "Follow-up plan", func(s *model.DiagnosisAndTreatment) *string { return &s.FollowUpPlan }},
	FieldDef[model.DiagnosisAndTreatment, DiagnosisField, string]{DiagnosisNotes, "Notes", func(s *model.DiagnosisAndTreatment) *string { return &s.Notes }},
)

var diagnosisLists = map[DiagnosisList]func(*model.DiagnosisAndTreatment) *[]string{
	ListProblems:      func(s *model.DiagnosisAndTreatment) *[]string { return &s.Problems },
	ListSolutions:     func(s *model.DiagnosisAndTreatment) *[]string { return &s.Solutions },
	ListTreatmentPlan: func(s *model.DiagnosisAndTreatment) *[]string { return &s.TreatmentPlan },
}
