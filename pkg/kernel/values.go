package kernel

import "strings"

type JobCategory string

func NewJobCategory(v string) JobCategory { return JobCategory(v) }
func (c JobCategory) String() string      { return string(c) }
func (c JobCategory) IsEmpty() bool       { return string(c) == "" }

type JobDesignation string

func NewJobDesignation(v string) JobDesignation { return JobDesignation(v) }
func (d JobDesignation) String() string         { return string(d) }
func (d JobDesignation) IsEmpty() bool          { return string(d) == "" }

type JobLocation string

func NewJobLocation(v string) JobLocation { return JobLocation(v) }
func (l JobLocation) String() string      { return string(l) }
func (l JobLocation) IsEmpty() bool       { return string(l) == "" }

type CompanyName string

func NewCompanyName(v string) CompanyName { return CompanyName(v) }
func (n CompanyName) String() string      { return string(n) }
func (n CompanyName) IsEmpty() bool       { return string(n) == "" }

type ExperienceLevel string

func NewExperienceLevel(v string) ExperienceLevel { return ExperienceLevel(v) }
func (e ExperienceLevel) String() string          { return string(e) }
func (e ExperienceLevel) IsEmpty() bool           { return string(e) == "" }

type JobType string

func NewJobType(v string) JobType { return JobType(v) }
func (t JobType) String() string  { return string(t) }
func (t JobType) IsEmpty() bool   { return string(t) == "" }

type Skill string

func NewSkill(v string) Skill  { return Skill(v) }
func (s Skill) String() string { return string(s) }
func (s Skill) IsEmpty() bool  { return string(s) == "" }

// SalaryRange is the free-text salary string as posted ("₹10–18 LPA").
// Comparable numeric values come from the listing pipeline's normalizer.
type SalaryRange string

func NewSalaryRange(v string) SalaryRange { return SalaryRange(v) }
func (s SalaryRange) String() string      { return string(s) }
func (s SalaryRange) IsEmpty() bool       { return string(s) == "" }

type LogoPath string

func NewLogoPath(v string) LogoPath { return LogoPath(v) }
func (p LogoPath) String() string   { return string(p) }
func (p LogoPath) IsEmpty() bool    { return string(p) == "" }

type Email string

func NewEmail(v string) Email { return Email(v) }

// Normalized lowercases and trims the address. Email uniqueness and session
// lookups are case-insensitive, so every comparison goes through this.
func (e Email) Normalized() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }
