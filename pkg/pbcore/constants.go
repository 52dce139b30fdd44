package pbcore

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitInvalidDocument = 11 // Document XML could not be parsed
	ExitWrongVariant    = 12 // Migration invoked on the wrong document shape
	ExitTermError       = 13 // Unknown term, missing node or missing index
	ExitDataError       = 14 // Unparseable date or ambiguous coverage
)

const (
	// SourceInstantiationColors is stamped on instantiationColors during physical
	// instantiation extraction.
	SourceInstantiationColors = "PBCore instantiationColors"

	// AnnotationEventSeries marks relations kept by document cleaning.
	AnnotationEventSeries = "Event Series"

	// AnnotationAccessionNumber marks relations additionally kept by digital document cleaning.
	AnnotationAccessionNumber = "Accession Number"

	// AnnotationArchivalCollection marks the collection link preserved by digital document cleaning.
	AnnotationArchivalCollection = "Archival Collection"

	// AnnotationPID marks the identifier carrying the repository object PID.
	AnnotationPID = "PID"
)
