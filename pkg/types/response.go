package types

// AdmissionResponse is the outbound admission decision. allowed=true
// implies Patch is present (possibly empty) and Result is absent;
// allowed=false implies Result is present.
type AdmissionResponse struct {
	UID       string
	Allowed   bool
	PatchType string
	Patch     []byte
	Warnings  []string
	Result    string
}

// JSONPatchType is the only patch type this pipeline ever produces.
const JSONPatchType = "JSONPatch"
