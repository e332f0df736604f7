// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// UtilisateurLogin carries the submitted credentials.
type UtilisateurLogin struct {
	Courriel   string `json:"courriel" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required"`
}

// JetonRequest is the body of the token endpoint.
type JetonRequest struct {
	UtilisateurLogin *UtilisateurLogin `json:"utilisateurLogin" binding:"required"`
}

// JetonResponse always carries the token key; it is empty when no token was issued.
type JetonResponse struct {
	Token string `json:"token"`
	Error string `json:"error,omitempty"`
}
