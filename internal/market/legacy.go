package market

// Aliases memetakan email ke user_id lama (UUID) untuk baris yang dibuat
// sebelum migrasi ke email-sebagai-id. Ini data migrasi, bukan aturan bisnis:
// tabelnya diisi dari konfigurasi dan kosong secara default. Kepemilikan
// normal tetap murni kesamaan email.
type Aliases map[string]string

// SameOwner reports whether ownerID identifies the user with the given email,
// either directly or through a legacy alias.
func (a Aliases) SameOwner(ownerID, email string) bool {
	if ownerID == "" || email == "" {
		return false
	}
	if ownerID == email {
		return true
	}
	return a[email] != "" && ownerID == a[email]
}
