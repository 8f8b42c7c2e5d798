package domain

// SubjectWorkspace is the token subject type for workspace bearer tokens.
const SubjectWorkspace = "WORKSPACE"
