package service

type CommitResult struct {
	Root   string `json:"root"`
	Body   string `json:"body"`
	Depth  int    `json:"depth"`
	Leaves int    `json:"leaves"`
}

// Commitment is what survives a commit: the root and encoded body, plus the
// params needed to regenerate candidate grids at redemption.
type Commitment struct {
	Root   string `json:"root"`
	Body   string `json:"body"`
	Params Params `json:"params"`
}

// Submission is a located proof. Answer is the matched leaf digest.
type Submission struct {
	Proof  []Digest `json:"proof"`
	Answer Digest   `json:"answer"`
	Order  []bool   `json:"order"`
}

type RedemptionResult struct {
	Root       string      `json:"root"`
	Mode       string      `json:"mode"`
	Submission *Submission `json:"submission"`
}
