package server

import (
	"errors"

	"dormirlahaut/internal/contribution"
	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/moderation"
)

// errorTranslations maps known backend messages to user-facing French, the
// raw message passing through otherwise.
var errorTranslations = map[string]string{
	"Internal server error":                    "Erreur serveur interne",
	"User already exists":                      "Un compte existe déjà avec cet email",
	"Invalid credentials":                      "Email ou mot de passe incorrect",
	"User not found":                           "Utilisateur non trouvé",
	"Unauthorized":                             "Vous devez être connecté",
	"Forbidden":                                "Accès non autorisé",
	"Not found":                                "Ressource non trouvée",
	"Email and password are required":          "Email et mot de passe requis",
	"Password must be at least 6 characters":   "Le mot de passe doit contenir au moins 6 caractères",
	"Email not verified":                       "Veuillez vérifier votre email avant de vous connecter",
}

var httpStatusMessages = map[int]string{
	400: "Requête invalide",
	401: "Vous devez être connecté",
	403: "Accès non autorisé",
	404: "Ressource non trouvée",
	408: "Délai d'attente dépassé",
	429: "Trop de requêtes, veuillez réessayer plus tard",
	500: "Erreur serveur interne",
	502: "Serveur temporairement indisponible",
	503: "Service indisponible",
	504: "Délai d'attente du serveur dépassé",
}

// validationMessages localizes the client-side checks that block before any
// network call.
var validationMessages = map[error]string{
	contribution.ErrNameRequired:         "Veuillez remplir tous les champs obligatoires",
	contribution.ErrDescriptionRequired:  "Veuillez remplir tous les champs obligatoires",
	contribution.ErrInvalidCategory:      "Catégorie invalide",
	contribution.ErrInvalidMassif:        "Massif invalide",
	contribution.ErrInvalidExposure:      "Exposition invalide",
	contribution.ErrNoLocation:           "Veuillez sélectionner une position sur la carte",
	contribution.ErrNoChanges:            "Aucune modification détectée",
	contribution.ErrEmptyComment:         "Veuillez entrer un commentaire",
	contribution.ErrInvalidPhotoURL:      "URL invalide. Veuillez entrer une URL valide.",
	contribution.ErrNotAnImage:           "Seules les images sont acceptées",
	contribution.ErrAlreadyPending:       "Vous avez déjà une contribution de ce type en attente de validation",
	moderation.ErrNoFieldsSelected:       "Veuillez sélectionner au moins un champ à approuver",
	moderation.ErrEmptyReason:            "Veuillez entrer une raison de rejet",
	moderation.ErrNotConfirmed:           "Confirmation requise",
}

// translate picks the user-facing message for an error, falling back to the
// raw text.
func translate(err error) string {
	for sentinel, msg := range validationMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		if msg, ok := errorTranslations[apiErr.Message]; ok {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if msg, ok := httpStatusMessages[apiErr.Status]; ok {
			return msg
		}
	}

	var netErr *gateway.NetworkError
	if errors.As(err, &netErr) {
		return "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	}
	if errors.Is(err, gateway.ErrEmptyResponse) {
		return "Le serveur ne répond pas. Réessayez dans quelques secondes."
	}
	if errors.Is(err, gateway.ErrMalformedResponse) {
		return "Réponse invalide du serveur"
	}

	if msg, ok := errorTranslations[err.Error()]; ok {
		return msg
	}
	return err.Error()
}
