package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Cotisation statuses. StatusValid is the single canonical "validated"
// spelling; every comparison in the codebase uses these literals.
const (
	CotisationPending  = "pending"
	CotisationValid    = "valid"
	CotisationRejected = "rejected"
)

// Article statuses. ArticleValidated is a legacy value still present in
// old rows; it is readable as visible but never written anymore.
const (
	ArticlePending   = "pending"
	ArticleApproved  = "approved"
	ArticleRejected  = "rejected"
	ArticleValidated = "validated"
)

// ArticleVisible reports whether an article status is buyer-visible.
func ArticleVisible(status string) bool {
	return status == ArticleApproved || status == ArticleValidated
}

// PlaceholderImage is returned wherever an article has no photos.
const PlaceholderImage = "/static/assets/placeholder.png"
