package domain

// RawScrapeRecord es el registro crudo que devuelve el proveedor de scraping.
// La forma varia segun la version del actor; las claves desconocidas se ignoran.
type RawScrapeRecord map[string]any

// Post es una publicacion del perfil con su caption ya resuelto.
type Post struct {
	CaptionText string `json:"captionText"`
}

// Profile es la representacion canonica de una cuenta de Instagram,
// inmutable una vez construida por el normalizador.
type Profile struct {
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Biography         string `json:"biography"`
	FollowersCount    int    `json:"followersCount"`
	FollowingCount    int    `json:"followingCount"`
	PostsCount        int    `json:"postsCount"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	LatestPosts       []Post `json:"latestPosts"`
	IsVerified        bool   `json:"isVerified"`
}

// RoastResult es el payload de respuesta de un roast exitoso.
type RoastResult struct {
	Profile Profile `json:"profile"`
	Roast   string  `json:"roast"`
}
