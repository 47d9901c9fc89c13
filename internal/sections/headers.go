package sections

// Headers is the closed list of standard resume section headers used to find the
// end of the experience span.
var Headers = []string{
	"Contact Information", "Objective", "Summary", "Education", "Experience",
	"Skills", "Projects", "Certifications", "Licenses", "Awards", "Honors",
	"Publications", "References", "Technical Skills", "Computer Skills",
	"Programming Languages", "Software Skills", "Soft Skills", "Language Skills",
	"Professional Skills", "Transferable Skills", "Work Experience",
	"Professional Experience", "Employment History", "Internship Experience",
	"Volunteer Experience", "Leadership Experience", "Research Experience",
	"Teaching Experience",
}
