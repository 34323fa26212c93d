package builder

import (
	"strings"
	"text/template"

	"iotshop/internal/domain"
)

// SchematicURL is a stock rendering used until real schematic generation
// exists; every blueprint points at the same image.
const SchematicURL = "https://images.pexels.com/photos/3912982/pexels-photo-3912982.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

var firmwareSuggestions = []string{
	"Use Arduino IDE for programming microcontrollers",
	"Consider MQTT protocol for IoT device communication",
	"Initialize sensors before the main loop",
	"Implement deep sleep mode for battery conservation",
}

var instructionsTmpl = template.Must(template.New("instructions").Parse(`# Project: {{.Title}}

## Objective
{{.Objective}}

## Setup Instructions

1. Connect the sensors to the correct GPIO pins on your microcontroller
2. Install the required libraries for each component
3. Upload the firmware to your microcontroller
4. Power the device using {{.PowerSource}}
5. Test each component individually before final assembly
6. For troubleshooting, check the serial monitor output

## Power Considerations
{{if .Battery}}Implement sleep modes and power optimization techniques to extend battery life.{{else}}Ensure your power supply can provide sufficient current for all components.{{end}}

## Environmental Considerations
{{if .Outdoor}}Use weatherproof enclosures and consider temperature variations.{{else}}Standard enclosures should be sufficient for indoor use.{{end}}
{{if .Additional}}
## Additional Requirements
{{.Additional}}
{{end}}`))

func generateBlueprint(components []domain.ProjectComponent, req domain.ProjectRequirements) domain.Blueprint {
	bom := make([]domain.ProjectComponent, len(components))
	copy(bom, components)

	var b strings.Builder
	// The template has no failure modes beyond programmer error; Must above
	// already guards the parse.
	_ = instructionsTmpl.Execute(&b, struct {
		Title, Objective, PowerSource, Additional string
		Battery, Outdoor                          bool
	}{
		Title:       req.Title,
		Objective:   req.Objective,
		PowerSource: req.PowerSource,
		Additional:  strings.TrimSpace(req.AdditionalRequirements),
		Battery:     req.PowerSource == domain.PowerBattery,
		Outdoor:     req.Environment == domain.EnvironmentOutdoor,
	})

	return domain.Blueprint{
		Schematic:           SchematicURL,
		BOM:                 bom,
		FirmwareSuggestions: append([]string(nil), firmwareSuggestions...),
		Instructions:        b.String(),
	}
}
