package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys shared with the frontend.
const (
	KeyFetched = "success.fetched"
	KeyCreated = "success.created"
	KeyUpdated = "success.updated"
	KeyDeleted = "success.deleted"

	KeyRegistered         = "auth.registered"
	KeyLoggedIn           = "auth.logged_in"
	KeyLoggedOut          = "auth.logged_out"
	KeyInvalidCredentials = "auth.invalid_credentials"
	KeyUnauthenticated    = "auth.unauthenticated"
	KeyTokenInvalid       = "auth.token_invalid"
	KeyEmailChecked       = "auth.email_checked"
	KeyResetLinkSent      = "auth.reset_link_sent"
	KeyResetTokenValid    = "auth.reset_token_valid"
	KeyResetTokenInvalid  = "auth.reset_token_invalid"
	KeyPasswordReset      = "auth.password_reset"

	KeyForbidden       = "error.forbidden"
	KeyNotFound        = "error.not_found"
	KeyValidation      = "error.validation"
	KeyBadRequest      = "error.bad_request"
	KeyInternal        = "error.internal"
	KeyTooManyRequests = "error.too_many_requests"
	KeyInvalidPage     = "error.invalid_page"
	KeyInvalidPageSize = "error.invalid_page_size"

	KeyEmailTaken        = "validation.email_taken"
	KeyReferenceTaken    = "validation.reference_taken"
	KeyNumberTaken       = "validation.number_taken"
	KeyExpiryBeforeIssue = "validation.expiry_before_issue"
	KeyDueBeforeIssue    = "validation.due_before_issue"
	KeyParentNotFound    = "validation.parent_not_found"
	KeyQuoteNotAccepted  = "validation.quote_not_accepted"
	KeyPasswordMismatch  = "validation.password_mismatch"
	KeyInvalidDate       = "validation.invalid_date"

	KeyQuoteConverted   = "quote.converted"
	KeyDashboardFetched = "dashboard.fetched"

	KeyMailResetSubject   = "mail.reset.subject"
	KeyMailResetIntro     = "mail.reset.intro"
	KeyMailResetButton    = "mail.reset.button"
	KeyMailOverdueIntro   = "mail.overdue.intro"
	KeyMailOverdueButton  = "mail.overdue.button"
	KeyMailColumnNumber   = "mail.column.number"
	KeyMailColumnDueDate  = "mail.column.due_date"
	KeyMailColumnTotal    = "mail.column.total"
	KeyMailLinkFallback   = "mail.link_fallback"
	KeyMailRightsReserved = "mail.rights_reserved"
)

var texts = map[string][2]string{
	// key: {fr, en}
	KeyFetched: {"Données récupérées avec succès", "Fetched successfully"},
	KeyCreated: {"Créé avec succès", "Created successfully"},
	KeyUpdated: {"Mis à jour avec succès", "Updated successfully"},
	KeyDeleted: {"Supprimé avec succès", "Deleted successfully"},

	KeyRegistered:         {"Compte créé avec succès", "Account created successfully"},
	KeyLoggedIn:           {"Connexion réussie", "Login successful"},
	KeyLoggedOut:          {"Déconnexion réussie", "Logged out successfully"},
	KeyInvalidCredentials: {"Identifiants invalides", "Invalid credentials"},
	KeyUnauthenticated:    {"Authentification requise", "Authentication required"},
	KeyTokenInvalid:       {"Jeton invalide ou expiré", "Invalid or expired token"},
	KeyEmailChecked:       {"Adresse e-mail vérifiée", "Email checked"},
	KeyResetLinkSent:      {"Si l'adresse existe, un lien de réinitialisation a été envoyé", "If the email exists, a reset link has been sent"},
	KeyResetTokenValid:    {"Le jeton de réinitialisation est valide", "Reset token is valid"},
	KeyResetTokenInvalid:  {"Jeton de réinitialisation invalide ou expiré", "Invalid or expired reset token"},
	KeyPasswordReset:      {"Mot de passe réinitialisé avec succès", "Password has been reset successfully"},

	KeyForbidden:       {"Accès refusé", "Forbidden: insufficient permissions"},
	KeyNotFound:        {"Ressource introuvable", "Resource not found"},
	KeyValidation:      {"Les données fournies sont invalides", "The given data was invalid"},
	KeyBadRequest:      {"Format de requête invalide", "Invalid request format"},
	KeyInternal:        {"Erreur interne du serveur", "Internal server error"},
	KeyTooManyRequests: {"Trop de requêtes, réessayez plus tard", "Too many requests, try again later"},
	KeyInvalidPage:     {"La page doit être supérieure à 0", "Page must be greater than 0"},
	KeyInvalidPageSize: {"La taille de page doit être comprise entre 1 et 100", "Page size must be between 1 and 100"},

	KeyEmailTaken:        {"Cette adresse e-mail est déjà utilisée", "This email is already taken"},
	KeyReferenceTaken:    {"Cette référence est déjà utilisée", "This reference is already taken"},
	KeyNumberTaken:       {"Ce numéro est déjà utilisé", "This number is already taken"},
	KeyExpiryBeforeIssue: {"La date d'expiration doit être postérieure à la date d'émission", "The expiry date must be after the issue date"},
	KeyDueBeforeIssue:    {"La date d'échéance ne peut pas précéder la date d'émission", "The payment due date cannot be before the issue date"},
	KeyParentNotFound:    {"L'élément parent est introuvable", "The parent record does not exist"},
	KeyQuoteNotAccepted:  {"Seul un devis accepté peut être facturé", "Only an accepted quote can be invoiced"},
	KeyPasswordMismatch:  {"La confirmation du mot de passe ne correspond pas", "The password confirmation does not match"},
	KeyInvalidDate:       {"Date invalide, format attendu AAAA-MM-JJ", "Invalid date, expected YYYY-MM-DD"},

	KeyQuoteConverted:   {"Devis converti en facture", "Quote converted to invoice"},
	KeyDashboardFetched: {"Tableau de bord récupéré", "Dashboard fetched"},

	KeyMailResetSubject: {"Réinitialisation de votre mot de passe", "Reset your password"},
	KeyMailResetIntro: {
		"Nous avons reçu une demande de réinitialisation de votre mot de passe. Ce lien expire dans 30 minutes. Si vous n'êtes pas à l'origine de cette demande, ignorez cet e-mail.",
		"We received a request to reset your password. This link expires in 30 minutes. If you did not request it, you can ignore this email.",
	},
	KeyMailResetButton: {"Réinitialiser le mot de passe", "Reset password"},
	KeyMailOverdueIntro: {
		"Bonjour %s, les factures suivantes ont dépassé leur date d'échéance et restent impayées.",
		"Hello %s, the following invoices are past their due date and remain unpaid.",
	},
	KeyMailOverdueButton:  {"Voir mes factures", "View my invoices"},
	KeyMailColumnNumber:   {"Numéro", "Number"},
	KeyMailColumnDueDate:  {"Échéance", "Due date"},
	KeyMailColumnTotal:    {"Montant", "Total"},
	KeyMailLinkFallback:   {"Si le bouton ne fonctionne pas, copiez ce lien dans votre navigateur :", "If the button doesn't work, copy and paste this link into your browser:"},
	KeyMailRightsReserved: {"Tous droits réservés.", "All rights reserved."},
}

var cat = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(French))
	for key, t := range texts {
		_ = b.SetString(French, key, t[0])
		_ = b.SetString(English, key, t[1])
	}
	return b
}()

// T renders the message for key in the given locale. Unknown keys are
// returned as-is so the client can still look them up.
func T(tag language.Tag, key string, args ...interface{}) string {
	return message.NewPrinter(tag, message.Catalog(cat)).Sprintf(key, args...)
}
