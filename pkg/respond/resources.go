package respond

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourceDirectory is the static directory of emergency help attached to
// high-risk responses. It is read-only configuration: loaded once at startup
// from YAML, or falling back to the built-in national directory.
type ResourceDirectory struct {
	Hotlines          []Hotline          `yaml:"hotlines" json:"hotlines"`
	Hospitals         []Hospital         `yaml:"hospitals" json:"hospitals"`
	CounselingCenters []CounselingCenter `yaml:"counseling_centers" json:"counseling_centers"`
	OnlineResources   []OnlineResource   `yaml:"online_resources" json:"online_resources"`
	EmergencyContacts []Contact          `yaml:"emergency_contacts" json:"emergency_contacts"`
}

// Hotline is a phone line for crisis support.
type Hotline struct {
	Name        string `yaml:"name" json:"name"`
	Number      string `yaml:"number" json:"number"`
	Description string `yaml:"description" json:"description"`
	Language    string `yaml:"language" json:"language,omitempty"`
}

// Hospital is an inpatient or emergency facility.
type Hospital struct {
	Name     string   `yaml:"name" json:"name"`
	Location string   `yaml:"location" json:"location"`
	Phone    string   `yaml:"phone" json:"phone"`
	Services []string `yaml:"services" json:"services"`
	Hours    string   `yaml:"hours" json:"hours"`
}

// CounselingCenter is an outpatient counseling service.
type CounselingCenter struct {
	Name        string   `yaml:"name" json:"name"`
	Phone       string   `yaml:"phone" json:"phone,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Services    []string `yaml:"services" json:"services"`
	Target      string   `yaml:"target" json:"target,omitempty"`
}

// OnlineResource is a website or app with mental-health information.
type OnlineResource struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url,omitempty"`
	Description string `yaml:"description" json:"description"`
}

// Contact is the condensed form attached directly to crisis responses.
type Contact struct {
	Name      string `yaml:"name" json:"name"`
	Number    string `yaml:"number" json:"number"`
	Available string `yaml:"available" json:"available"`
}

// LoadDirectory reads a resource directory from a YAML file.
func LoadDirectory(path string) (*ResourceDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource directory: %w", err)
	}

	var dir ResourceDirectory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("parse resource directory: %w", err)
	}
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return &dir, nil
}

// Validate checks that the directory can back a crisis response.
func (d *ResourceDirectory) Validate() error {
	if len(d.Hotlines) == 0 {
		return fmt.Errorf("resource directory has no hotlines")
	}
	if len(d.EmergencyContacts) == 0 {
		return fmt.Errorf("resource directory has no emergency contacts")
	}
	for i, h := range d.Hotlines {
		if h.Name == "" || h.Number == "" {
			return fmt.Errorf("hotline %d missing name or number", i)
		}
	}
	for i, c := range d.EmergencyContacts {
		if c.Name == "" || c.Number == "" {
			return fmt.Errorf("emergency contact %d missing name or number", i)
		}
	}
	return nil
}

// DefaultDirectory returns the built-in directory for Oman.
func DefaultDirectory() *ResourceDirectory {
	return &ResourceDirectory{
		Hotlines: []Hotline{
			{
				Name:        "Mental Health Helpline, Ministry of Health",
				Number:      "80077",
				Description: "Free service, available 24/7",
				Language:    "Arabic",
			},
			{
				Name:        "General Emergency",
				Number:      "999",
				Description: "For life-threatening emergencies",
				Language:    "Arabic and English",
			},
			{
				Name:        "Oman Red Crescent",
				Number:      "999",
				Description: "Ambulance and medical emergency services",
				Language:    "Arabic",
			},
		},
		Hospitals: []Hospital{
			{
				Name:     "University Hospital",
				Location: "Muscat",
				Phone:    "+968-24141414",
				Services: []string{"psychiatry", "psychiatric emergency"},
				Hours:    "24/7",
			},
			{
				Name:     "Khoula Hospital",
				Location: "Muscat",
				Phone:    "+968-24560300",
				Services: []string{"general emergency", "psychiatry"},
				Hours:    "24/7",
			},
			{
				Name:     "The National Hospital",
				Location: "Muscat",
				Phone:    "+968-24583600",
				Services: []string{"psychiatry", "addiction treatment"},
				Hours:    "by appointment",
			},
		},
		CounselingCenters: []CounselingCenter{
			{
				Name:     "Psychological Counseling Center, Sultan Qaboos University",
				Phone:    "+968-24141111",
				Services: []string{"psychological counseling", "family counseling"},
				Target:   "students and community members",
			},
			{
				Name:        "Primary Health Care Centers",
				Description: "Available in all governorates",
				Services:    []string{"initial psychological consultation", "specialist referral"},
			},
		},
		OnlineResources: []OnlineResource{
			{
				Name:        "Oman Ministry of Health",
				URL:         "https://www.moh.gov.om",
				Description: "Information on mental health services",
			},
			{
				Name:        "Sehhaty app",
				Description: "Ministry of Health app for medical consultations",
			},
		},
		EmergencyContacts: []Contact{
			{Name: "Mental Health Helpline", Number: "80077", Available: "24/7"},
			{Name: "Emergency", Number: "999", Available: "24/7"},
		},
	}
}
