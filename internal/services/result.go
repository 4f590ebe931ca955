package services

// Code classifies a lifecycle failure. Every store and lifecycle
// operation reports through one explicit Result shape so callers never
// have to sniff return types.
type Code string

const (
	CodeOK             Code = ""
	CodeMissingField   Code = "MissingField"
	CodeInvalidDate    Code = "InvalidDate"
	CodeInvalidNumeric Code = "InvalidNumeric"

	CodeNotFound             Code = "NotFound"
	CodeArtworkNotFound      Code = "ArtworkNotFound"
	CodeArtworkNotAvailable  Code = "ArtworkNotAvailable"
	CodeArtworkNotReturnable Code = "ArtworkNotReturnable"

	CodeDuplicateTransaction Code = "DuplicateTransaction"
	CodeDuplicateRecord      Code = "DuplicateRecord"
	CodeImmutableTransaction Code = "ImmutableTransaction"
	CodeImmutableArtwork     Code = "ImmutableArtwork"
	CodeExhibitionFinished   Code = "ExhibitionFinished"

	CodeStoreError Code = "StoreError"
)

// Result is the single outcome shape of every lifecycle operation:
// a success flag, a failure code, a human-readable message in the
// language of the gallery staff, and the id of the affected record.
type Result struct {
	OK      bool   `json:"success"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

func ok(msg string) Result {
	return Result{OK: true, Message: msg}
}

func okID(msg string, id uint) Result {
	return Result{OK: true, Message: msg, ID: id}
}

func fail(code Code, msg string) Result {
	return Result{OK: false, Code: code, Message: msg}
}
