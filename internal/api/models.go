package api

// Gender is the backend's single-letter gender code.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Patient mirrors the Paciente resource.
type Patient struct {
	ID        int    `json:"idPaciente"`
	Name      string `json:"nombre"`
	BirthDate string `json:"fechaNacimiento"` // ISO date, server-side format
	Gender    Gender `json:"genero"`
	Phone     string `json:"telefono,omitempty"`
}

// PatientInput is the create/update payload; the server assigns the id.
type PatientInput struct {
	Name      string `json:"nombre"`
	BirthDate string `json:"fechaNacimiento"`
	Gender    Gender `json:"genero"`
	Phone     string `json:"telefono,omitempty"`
}

// Doctor mirrors the MedicoUser resource.
type Doctor struct {
	ID        int    `json:"idMedico"`
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad"`
	License   string `json:"cedula"`
	Address   string `json:"direccion"`
	Phone     string `json:"telefono"`
	Email     string `json:"correo"`
	Role      string `json:"rol"`
}

// DoctorInput is the create/update payload for doctors.
type DoctorInput struct {
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad"`
	License   string `json:"cedula"`
	Address   string `json:"direccion"`
	Phone     string `json:"telefono"`
	Email     string `json:"correo"`
	Role      string `json:"rol"`
}

// Sample mirrors the Muestra resource.
type Sample struct {
	ID   int    `json:"idMuestra"`
	Name string `json:"nombre"`
}

// SampleInput is the create/update payload for samples.
type SampleInput struct {
	Name string `json:"nombre"`
}
