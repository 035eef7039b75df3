package config

// FirebaseEnabled reports whether any firebase-backed component is configured.
func FirebaseEnabled() bool {
	return AppConfig.AuthProvider == "firebase" || UseFirestore() || AppConfig.NotificationsEnabled
}
