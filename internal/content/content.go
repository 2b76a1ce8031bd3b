// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the site content record: every piece of copy,
// imagery, pricing, schedule and contact detail the site renders.
// The record is loaded once at startup and shared read-only.
package content

import "io/fs"

// LogoMode selects how the brand logo is presented.
type LogoMode string

// Logo modes.
const (
	LogoText  LogoMode = "text"
	LogoImage LogoMode = "image"
	LogoBoth  LogoMode = "both"
)

// ImageKind tells whether an image slot holds a real photo or a generated placeholder.
type ImageKind string

// Image kinds.
const (
	ImagePhoto       ImageKind = "photo"
	ImagePlaceholder ImageKind = "placeholder"
)

// Record is the complete site content.
type Record struct {
	Metadata     Metadata     `yaml:"metadata"`
	Branding     Branding     `yaml:"branding"`
	Navigation   Navigation   `yaml:"navigation"`
	Hero         Hero         `yaml:"hero"`
	Services     Services     `yaml:"services"`
	About        About        `yaml:"about"`
	Testimonials Testimonials `yaml:"testimonials"`
	Contact      Contact      `yaml:"contact"`
	Footer       Footer       `yaml:"footer"`
	Booking      Booking      `yaml:"booking"`
	SEO          SEO          `yaml:"seo"`
	Legal        Legal        `yaml:"legal"`
	NotFound     NotFound     `yaml:"not_found"`

	docs fs.FS // legal markdown sources
}

// Metadata holds practice-wide facts.
type Metadata struct {
	SiteName      string `yaml:"site_name"`
	CounselorName string `yaml:"counselor_name"`
	Tagline       string `yaml:"tagline"`
	Description   string `yaml:"description"`
	URL           string `yaml:"url"`
	Email         string `yaml:"email"`
	Phone         string `yaml:"phone"`
	Location      string `yaml:"location"`
	Timezone      string `yaml:"timezone"`
}

// Branding holds logo and palette settings.
type Branding struct {
	Logo   Logo   `yaml:"logo"`
	Colors Colors `yaml:"colors"`
}

// Logo describes the brand mark.
type Logo struct {
	Mode          LogoMode `yaml:"mode"`
	Text          string   `yaml:"text"`
	ImagePath     string   `yaml:"image_path"`
	TextImagePath string   `yaml:"text_image_path"`
	Alt           string   `yaml:"alt"`
	LogoColor     string   `yaml:"logo_color"`
	TextColor     string   `yaml:"text_color"`
}

// Colors is the site palette.
type Colors struct {
	Primary     string `yaml:"primary"`
	PrimaryDark string `yaml:"primary_dark"`
	Accent      string `yaml:"accent"`
	AccentLight string `yaml:"accent_light"`
}

// Navigation holds header links and labels.
type Navigation struct {
	Links       []NavLink `yaml:"links"`
	CTA         string    `yaml:"cta"`
	MenuTitle   string    `yaml:"menu_title"`
	ToggleLabel string    `yaml:"toggle_label"`
	CloseLabel  string    `yaml:"close_label"`
	SkipLabel   string    `yaml:"skip_label"`
}

// NavLink points at an in-page section anchor.
type NavLink struct {
	Label   string `yaml:"label"`
	Section string `yaml:"section"`
}

// Hero is the top-of-page section.
type Hero struct {
	Badge        Badge  `yaml:"badge"`
	Headline     string `yaml:"headline"`
	Highlight    string `yaml:"highlight"`
	Subheadline  string `yaml:"subheadline"`
	PrimaryCTA   string `yaml:"primary_cta"`
	SecondaryCTA string `yaml:"secondary_cta"`
	Stats        []Stat `yaml:"stats"`
	Image        Image  `yaml:"image"`
}

// Badge is the small pill above the hero headline.
type Badge struct {
	Emoji string `yaml:"emoji"`
	Text  string `yaml:"text"`
}

// Stat is one labeled figure in the hero stats row.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Icon  string `yaml:"icon,omitempty"`
}

// Image is a path-or-placeholder image slot.
type Image struct {
	Kind    ImageKind `yaml:"kind"`
	Path    string    `yaml:"path"`
	Alt     string    `yaml:"alt"`
	Caption Caption   `yaml:"caption"`
	// Placeholder is the line shown under the initial badge when no photo is used.
	Placeholder string `yaml:"placeholder"`
}

// Caption sits under a photo.
type Caption struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

// IsPlaceholder reports whether the slot renders a generated badge instead of an image tag.
func (i Image) IsPlaceholder() bool {
	return i.Kind == ImagePlaceholder || i.Path == ""
}

// Services is the services catalog section.
type Services struct {
	Heading    string    `yaml:"heading"`
	Subheading string    `yaml:"subheading"`
	Items      []Service `yaml:"items"`
	ReadMore   string    `yaml:"read_more"`
	BookLabel  string    `yaml:"book_label"`
	CTA        CTA       `yaml:"cta"`
}

// Service is one bookable counseling service.
type Service struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Detail      string `yaml:"detailed_description,omitempty"`
	Icon        string `yaml:"icon"`
	Duration    string `yaml:"duration"`
	Price       int    `yaml:"price"`
	EventType   string `yaml:"event_type,omitempty"`
}

// CTA is a heading, optional body text and a button label.
type CTA struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text,omitempty"`
	Button  string `yaml:"button"`
}

// About is the counselor bio section.
type About struct {
	Heading            string   `yaml:"heading"`
	Greeting           string   `yaml:"greeting"`
	Intro              string   `yaml:"intro"`
	Bio                string   `yaml:"bio"`
	CredentialsHeading string   `yaml:"credentials_heading"`
	Credentials        []string `yaml:"credentials"`
	Quote              *Quote   `yaml:"quote,omitempty"`
	Photo              Image    `yaml:"photo"`
}

// Quote is the optional pull-quote in the about section.
type Quote struct {
	Text       string `yaml:"text"`
	Reference  string `yaml:"reference"`
	Commentary string `yaml:"commentary,omitempty"`
}

// Testimonials is the client reviews section.
type Testimonials struct {
	Heading    string        `yaml:"heading"`
	Subheading string        `yaml:"subheading"`
	Items      []Testimonial `yaml:"items"`
	Aggregate  Aggregate     `yaml:"aggregate"`
	// StarsLabel names a star row for assistive technology. {rating} and
	// {max} are replaced with the filled and total glyph counts.
	StarsLabel string        `yaml:"stars_label"`
}

// Testimonial is one client review.
type Testimonial struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Rating   int    `yaml:"rating"`
	Text     string `yaml:"text"`
	Photo    string `yaml:"photo,omitempty"`
	Location string `yaml:"location,omitempty"`
}

// Aggregate holds the configurable part of the summary block under the
// testimonials grid. The rating label and count suffix are fixed.
type Aggregate struct {
	CountPrefix string `yaml:"count_prefix"`
}

// Contact is the contact section and page footer.
type Contact struct {
	Heading     string      `yaml:"heading"`
	Subheading  string      `yaml:"subheading"`
	Methods     []Method    `yaml:"methods"`
	OfficeHours OfficeHours `yaml:"office_hours"`
	CTA         CTA         `yaml:"cta"`
}

// Method is one way of reaching the practice.
type Method struct {
	Icon     string `yaml:"icon"`
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	SubValue string `yaml:"sub_value,omitempty"`
	// Link is empty for non-interactive entries.
	Link string `yaml:"link,omitempty"`
}

// OfficeHours is the weekly schedule table.
type OfficeHours struct {
	Heading  string  `yaml:"heading"`
	Schedule []Hours `yaml:"schedule"`
}

// Hours is one schedule row; both labels are free text.
type Hours struct {
	Days  string `yaml:"days"`
	Hours string `yaml:"hours"`
}

// Footer holds the page footer copy.
type Footer struct {
	Tagline   string `yaml:"tagline"`
	Copyright string `yaml:"copyright"`
	Links     []Link `yaml:"links"`
}

// Link is a labeled href.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Booking configures the third-party scheduling embed.
type Booking struct {
	Account       string      `yaml:"account"`
	EventType     string      `yaml:"event_type"`
	ScriptURL     string      `yaml:"script_url"`
	LinkBase      string      `yaml:"link_base"`
	Embed         EmbedConfig `yaml:"embed"`
	Title         string      `yaml:"title"`
	Subtitle      string      `yaml:"subtitle"`
	FooterText    string      `yaml:"footer_text"`
	CloseLabel    string      `yaml:"close_label"`
	FallbackLabel string      `yaml:"fallback_label"`
}

// EmbedConfig is serialized into the embed container's data-cal-config attribute.
type EmbedConfig struct {
	Theme                string `yaml:"theme" json:"theme"`
	BrandColor           string `yaml:"brand_color,omitempty" json:"brandColor,omitempty"`
	HideEventTypeDetails bool   `yaml:"hide_event_type_details" json:"hideEventTypeDetails"`
}

// SEO holds document head metadata.
type SEO struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Keywords      []string `yaml:"keywords"`
	OGImage       string   `yaml:"og_image"`
	TwitterHandle string   `yaml:"twitter_handle,omitempty"`
	Locale        string   `yaml:"locale"`
}

// Legal holds the policy pages.
type Legal struct {
	Privacy      Document     `yaml:"privacy"`
	Terms        Document     `yaml:"terms"`
	Cancellation Cancellation `yaml:"cancellation"`
	UpdatedLabel string       `yaml:"updated_label"`
	BackLabel    string       `yaml:"back_label"`
}

// NotFound is the copy of the page served for unknown paths.
type NotFound struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

// Document is a policy page backed by a markdown file.
type Document struct {
	Title       string `yaml:"title"`
	LastUpdated string `yaml:"last_updated"`
	Summary     string `yaml:"summary"`
	Source      string `yaml:"source"`
}

// Cancellation is the cancellation policy page.
type Cancellation struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Details []string `yaml:"details"`
}

// SectionIDs are the stable anchors of the page sections, in page order.
var SectionIDs = []string{"hero", "services", "about", "testimonials", "contact"}
