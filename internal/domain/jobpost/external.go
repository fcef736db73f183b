package jobpost

// ExternalPosting is one record of the external posting store. URL is the
// natural key the synchronizer reconciles on; reference fields carry ids of
// local rows.
type ExternalPosting struct {
	URL              string   `dynamodbav:"url"`
	Title            string   `dynamodbav:"title"`
	ContractType     string   `dynamodbav:"contractType"`
	ExperienceLevel  string   `dynamodbav:"experienceLevel"`
	MinSalary        *int     `dynamodbav:"minSalary,omitempty"`
	MaxSalary        *int     `dynamodbav:"maxSalary,omitempty"`
	Currency         string   `dynamodbav:"currency,omitempty"`
	Description      string   `dynamodbav:"description,omitempty"`
	Responsibilities string   `dynamodbav:"responsibilities,omitempty"`
	Requirements     string   `dynamodbav:"requirements,omitempty"`
	Benefits         string   `dynamodbav:"benefits,omitempty"`
	VisaSponsorship  bool     `dynamodbav:"visaSponsorship"`
	RequiresTravel   bool     `dynamodbav:"requiresTravel"`
	Languages        []string `dynamodbav:"languages,omitempty"`
	CompanySizes     []string `dynamodbav:"companySizes,omitempty"`
	ExpirationDays   int      `dynamodbav:"expirationDays,omitempty"`
	CompanyID        string   `dynamodbav:"companyId,omitempty"`
	RecruiterFirmID  string   `dynamodbav:"recruiterFirmId,omitempty"`
	RoleIDs          []string `dynamodbav:"roleIds,omitempty"`
	IndustryIDs      []string `dynamodbav:"industryIds,omitempty"`
	RegionIDs        []string `dynamodbav:"regionIds,omitempty"`
}

// ExternalItem is a decoded record, or the reason it could not be decoded.
type ExternalItem struct {
	Posting ExternalPosting
	Err     error
}

// ExternalPage is one scan page. Next is empty once the scan is complete.
type ExternalPage struct {
	Items []ExternalItem
	Next  string
}
