package service

import (
	"fmt"
	"strings"

	"roastgram/internal/domain"
)

// RoastPromptBuilder construye el prompt de roast a partir de un perfil ya
// normalizado. Es una función pura: el mismo perfil produce siempre el mismo
// texto, byte a byte.
type RoastPromptBuilder struct{}

// BuildRoastPrompt arma el prompt completo que se envía al proveedor de
// generación. El template está en indonesio porque el público del producto
// lo es; pide sátira afilada pero de entretenimiento, no acoso.
func (RoastPromptBuilder) BuildRoastPrompt(profile domain.Profile) string {
	var sb strings.Builder

	sb.WriteString("Buatlah roast yang pedas tapi menghibur tentang akun Instagram ini. ")
	sb.WriteString("Gunakan humor cerdas dan satir yang tajam untuk mengkritik profil mereka dengan cara yang lucu. ")
	sb.WriteString("Analisis secara kocak semua aspek - dari foto yang (mungkin) overposed, jumlah followers yang mencurigakan, bio yang (mungkin) sok deep, sampai caption yang (mungkin) cringe. ")
	sb.WriteString("Buat roastingnya pedas tapi tetap mengundang tawa, bukan untuk menyakiti. ")
	sb.WriteString("Berikut data profil:\n\n")

	sb.WriteString(fmt.Sprintf("Username: %s\n", profile.Username))
	sb.WriteString(fmt.Sprintf("Full Name: %s\n", profile.FullName))
	sb.WriteString(fmt.Sprintf("Bio: %s\n", profile.Biography))
	sb.WriteString(fmt.Sprintf("Followers: %d\n", profile.FollowersCount))
	sb.WriteString(fmt.Sprintf("Following: %d\n", profile.FollowingCount))
	sb.WriteString(fmt.Sprintf("Posts: %d\n", profile.PostsCount))
	sb.WriteString(fmt.Sprintf("Verified: %s\n", yesNo(profile.IsVerified)))

	sb.WriteString("\nLatest Post Captions:\n")
	if len(profile.LatestPosts) == 0 {
		sb.WriteString("No posts found")
	} else {
		captions := make([]string, 0, len(profile.LatestPosts))
		for _, post := range profile.LatestPosts {
			captions = append(captions, post.CaptionText)
		}
		sb.WriteString(strings.Join(captions, "\n"))
	}

	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
