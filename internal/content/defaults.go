// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Default labels filled in when the record leaves them empty.
const (
	DefaultBookingScriptURL = "https://app.cal.com/embed/embed.js"
	DefaultBookingLinkBase  = "https://cal.com"
	DefaultEmbedTheme       = "light"

	defaultMenuTitle        = "Menu"
	defaultToggleLabel      = "Open menu"
	defaultNavCloseLabel    = "Close menu"
	defaultSkipLabel        = "Skip to content"
	defaultReadMore         = "Read More"
	defaultBookService      = "Book This Service"
	defaultCredentials      = "Credentials & Experience"
	defaultPlaceholderLine  = "Professional Counseling"
	defaultCountPrefix      = "Based on"
	defaultStarsLabel       = "Rated {rating} out of {max}"
	defaultCopyright        = "All rights reserved."
	defaultModalTitle       = "Book Your Session"
	defaultModalSubtitle    = "Select a time that works best for you"
	defaultModalFooter      = "Questions? Call us at"
	defaultModalCloseLabel  = "Close booking dialog"
	defaultFallbackLabel    = "Open the booking page"
	defaultUpdatedLabel     = "Last updated:"
	defaultBackLabel        = "Back to home"
	defaultLocale           = "en_US"
	defaultOfficeHoursTitle = "Office Hours"
	defaultNotFoundTitle    = "Page Not Found"
	defaultNotFoundMessage  = "The page you are looking for does not exist or has moved."
)

// applyDefaults fills empty optional labels. It never overwrites authored values.
func (r *Record) applyDefaults() {
	setDefault(&r.Navigation.MenuTitle, defaultMenuTitle)
	setDefault(&r.Navigation.ToggleLabel, defaultToggleLabel)
	setDefault(&r.Navigation.CloseLabel, defaultNavCloseLabel)
	setDefault(&r.Navigation.SkipLabel, defaultSkipLabel)
	if r.Branding.Logo.Mode == "" {
		r.Branding.Logo.Mode = LogoText
	}
	setDefault(&r.Branding.Logo.Text, r.Metadata.SiteName)
	setDefault(&r.Branding.Logo.Alt, r.Metadata.SiteName)

	setDefault(&r.Hero.Image.Placeholder, defaultPlaceholderLine)
	setDefault(&r.Hero.Image.Alt, r.Metadata.CounselorName)
	setDefault(&r.About.Photo.Alt, r.Metadata.CounselorName)
	setDefault(&r.About.CredentialsHeading, defaultCredentials)

	setDefault(&r.Services.ReadMore, defaultReadMore)
	setDefault(&r.Services.BookLabel, defaultBookService)

	setDefault(&r.Testimonials.Aggregate.CountPrefix, defaultCountPrefix)
	setDefault(&r.Testimonials.StarsLabel, defaultStarsLabel)

	setDefault(&r.Contact.OfficeHours.Heading, defaultOfficeHoursTitle)
	setDefault(&r.Footer.Copyright, defaultCopyright)

	b := &r.Booking
	setDefault(&b.ScriptURL, DefaultBookingScriptURL)
	setDefault(&b.LinkBase, DefaultBookingLinkBase)
	setDefault(&b.Embed.Theme, DefaultEmbedTheme)
	setDefault(&b.Title, defaultModalTitle)
	setDefault(&b.Subtitle, defaultModalSubtitle)
	setDefault(&b.FooterText, defaultModalFooter)
	setDefault(&b.CloseLabel, defaultModalCloseLabel)
	setDefault(&b.FallbackLabel, defaultFallbackLabel)

	setDefault(&r.SEO.Locale, defaultLocale)
	setDefault(&r.SEO.Title, r.Metadata.SiteName)
	setDefault(&r.SEO.Description, r.Metadata.Description)

	setDefault(&r.Legal.UpdatedLabel, defaultUpdatedLabel)
	setDefault(&r.Legal.BackLabel, defaultBackLabel)
	setDefault(&r.NotFound.Title, defaultNotFoundTitle)
	setDefault(&r.NotFound.Message, defaultNotFoundMessage)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
