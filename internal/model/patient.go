package model

// PatientForm is the draft of one patient record. All sections are siblings
// under one root; the store keeps each section behind its own pointer.
type PatientForm struct {
	PersonalInfo          *PersonalInfo          `json:"personalInfo"`
	MedicalConditions     *MedicalConditions     `json:"medicalConditions"`
	MedicalNotes          *MedicalNotes          `json:"medicalNotes"`
	VitalSigns            *VitalSigns            `json:"vitalSigns"`
	LabResults            *LabResults            `json:"labResults"`
	ImagingResults        *ImagingResults        `json:"imagingResults"`
	DiagnosisAndTreatment *DiagnosisAndTreatment `json:"diagnosisAndTreatment"`
}

// PersonalInfo holds demographics and visit details. SmokingDetails is only
// meaningful while IsSmoker is true.
type PersonalInfo struct {
	Name           string `json:"name"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	VisitDate      string `json:"visitDate"`
	CompanionName  string `json:"companionName"`
	CompanionPhone string `json:"companionPhone"`
	IsSmoker       bool   `json:"isSmoker"`
	SmokingDetails string `json:"smokingDetails"`
	BloodType      string `json:"bloodType"`
}

// MedicalConditions are the comorbidity flags asked at intake.
type MedicalConditions struct {
	Hypertension         bool `json:"htn"`
	Diabetes             bool `json:"dm"`
	IschemicHeartDisease bool `json:"ihd"`
	HeartFailure         bool `json:"hf"`
	Arrhythmia           bool `json:"arrhythmia"`
	LiverDisease         bool `json:"liver"`
	KidneyDisease        bool `json:"kidney"`
	ChestDisease         bool `json:"chest"`
	ThyroidDisease       bool `json:"thyroid"`
	CNSDisease           bool `json:"cns"`
	Cancer               bool `json:"cancer"`
	Surgery              bool `json:"surgery"`
}

// MedicalNotes carries one note per condition plus free text.
type MedicalNotes struct {
	Hypertension         string `json:"htn"`
	Diabetes             string `json:"dm"`
	IschemicHeartDisease string `json:"ihd"`
	HeartFailure         string `json:"hf"`
	Arrhythmia           string `json:"arrhythmia"`
	LiverDisease         string `json:"liver"`
	KidneyDisease        string `json:"kidney"`
	ChestDisease         string `json:"chest"`
	ThyroidDisease       string `json:"thyroid"`
	CNSDisease           string `json:"cns"`
	Cancer               string `json:"cancer"`
	Surgery              string `json:"surgery"`
	Others               string `json:"others"`
	Complaints           string `json:"complaints"`
}

// VitalSigns are bedside observations. Balance is derived from Intake and UOP.
type VitalSigns struct {
	HeartRate        string `json:"hr"`
	BloodPressure    string `json:"bp"`
	Temperature      string `json:"temp"`
	RespiratoryRate  string `json:"rr"`
	O2Saturation     string `json:"spo2"`
	GCS              string `json:"gcs"`
	RandomBloodSugar string `json:"rbs"`
	UOP              string `json:"uop"`
	Intake           string `json:"intake"`
	Balance          string `json:"balance"`
	CVP              string `json:"cvp"`
	IVC              string `json:"ivc"`
	DiureticDose     string `json:"diureticDose"`
	ExamNotes        string `json:"examNotes"`
}

// LabResults are stored as typed-in strings; units are display only.
type LabResults struct {
	Hemoglobin  string `json:"hb"`
	WBC         string `json:"wbc"`
	Platelets   string `json:"platelets"`
	Urea        string `json:"urea"`
	Creatinine  string `json:"creatinine"`
	Sodium      string `json:"na"`
	Potassium   string `json:"k"`
	ALT         string `json:"alt"`
	AST         string `json:"ast"`
	Albumin     string `json:"albumin"`
	Bilirubin   string `json:"bilirubin"`
	Troponin    string `json:"troponin"`
	CKMB        string `json:"ckmb"`
	PH          string `json:"ph"`
	PCO2        string `json:"pco2"`
	PO2         string `json:"po2"`
	HCO3        string `json:"hco3"`
	Lactate     string `json:"lactate"`
	PT          string `json:"pt"`
	INR         string `json:"inr"`
	APTT        string `json:"aptt"`
}

// ImagingResults hold free-text reports per study type.
type ImagingResults struct {
	CTBrain       string `json:"ctBrain"`
	CTChest       string `json:"ctChest"`
	CXR           string `json:"cxr"`
	Ultrasound    string `json:"ultrasound"`
	Duplex        string `json:"duplex"`
	ECG           string `json:"ecg"`
	Echo          string `json:"echo"`
	MPI           string `json:"mpi"`
	CTAngiography string `json:"ctAngiography"`
	Others        string `json:"others"`
}

// DiagnosisAndTreatment is the assessment and plan. TreatmentPlan is an
// ordered list of plan items.
type DiagnosisAndTreatment struct {
	Diagnosis             string   `json:"diagnosis"`
	DifferentialDiagnosis string   `json:"differentialDiagnosis"`
	Problems              []string `json:"problems"`
	Solutions             []string `json:"solutions"`
	Medications           string   `json:"medications"`
	IVFluids              string   `json:"ivFluids"`
	Antibiotics           string   `json:"antibiotics"`
	OxygenTherapy         string   `json:"oxygenTherapy"`
	Infusions             string   `json:"infusions"`
	Sedations             string   `json:"sedations"`
	TreatmentPlan         []string `json:"treatmentPlan"`
	FollowUpPlan          string   `json:"followUpPlan"`
	Notes                 string   `json:"notes"`
}

// Clone returns a copy that shares no slices with d.
func (d DiagnosisAndTreatment) Clone() DiagnosisAndTreatment {
	d.Problems = cloneStrings(d.Problems)
	d.Solutions = cloneStrings(d.Solutions)
	d.TreatmentPlan = cloneStrings(d.TreatmentPlan)
	return d
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// PatientRecord is the body of the patient create/update endpoints: the draft
// sections plus the custom template portion.
type PatientRecord struct {
	ID string `json:"id,omitempty"`
	PatientForm
	TemplateID   string         `json:"templateId,omitempty"`
	Status       string         `json:"status,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
	Audit
}
