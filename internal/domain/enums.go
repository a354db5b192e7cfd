package domain

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectOnHold    ProjectStatus = "OnHold"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectArchived  ProjectStatus = "Archived"
)

type PlanCategory string

const (
	CategoryResearch PlanCategory = "Research"
	CategoryDrafting PlanCategory = "Drafting"
	CategoryOutreach PlanCategory = "Outreach"
	CategoryEvidence PlanCategory = "Evidence"
	CategoryAdmin    PlanCategory = "Admin"
	CategoryOther    PlanCategory = "Other"
)

type PlanItemStatus string

const (
	ItemNotStarted PlanItemStatus = "NotStarted"
	ItemInProgress PlanItemStatus = "InProgress"
	ItemDone       PlanItemStatus = "Done"
	ItemDropped    PlanItemStatus = "Dropped"
)

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityNormal   Priority = "Normal"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

type ContactMethod string

const (
	MethodCall  ContactMethod = "Call"
	MethodEmail ContactMethod = "Email"
	MethodMail  ContactMethod = "Mail"
	MethodForm  ContactMethod = "Form"
	MethodCombo ContactMethod = "Combo"
)

type OutreachMethod string

const (
	OutreachCall    OutreachMethod = "Call"
	OutreachEmail   OutreachMethod = "Email"
	OutreachMail    OutreachMethod = "Mail"
	OutreachMeeting OutreachMethod = "Meeting"
	OutreachOther   OutreachMethod = "Other"
)

type OutcomeStatus string

const (
	OutcomeNone              OutcomeStatus = "None"
	OutcomeWaiting           OutcomeStatus = "Waiting"
	OutcomePositive          OutcomeStatus = "Positive"
	OutcomeNegative          OutcomeStatus = "Negative"
	OutcomeReferredElsewhere OutcomeStatus = "ReferredElsewhere"
)

type FollowUpStatus string

const (
	FollowUpOpen      FollowUpStatus = "Open"
	FollowUpCompleted FollowUpStatus = "Completed"
	FollowUpCancelled FollowUpStatus = "Cancelled"
)

type FinalStatus string

const (
	FinalNoResponse    FinalStatus = "NoResponse"
	FinalDeclined      FinalStatus = "Declined"
	FinalNotFit        FinalStatus = "NotFit"
	FinalCompletedHelp FinalStatus = "CompletedHelp"
	FinalOther         FinalStatus = "Other"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"Active": true, "OnHold": true, "Completed": true, "Archived": true,
}

// ValidPlanCategories is the canonical set of accepted plan item categories.
var ValidPlanCategories = map[string]bool{
	"Research": true, "Drafting": true, "Outreach": true,
	"Evidence": true, "Admin": true, "Other": true,
}

// ValidPlanItemStatuses is the canonical set of accepted plan item statuses.
var ValidPlanItemStatuses = map[string]bool{
	"NotStarted": true, "InProgress": true, "Done": true, "Dropped": true,
}

// ValidPriorities is the canonical set of accepted priorities.
var ValidPriorities = map[string]bool{
	"Low": true, "Normal": true, "High": true, "Critical": true,
}

// ValidContactMethods is the canonical set of accepted preferred contact methods.
var ValidContactMethods = map[string]bool{
	"Call": true, "Email": true, "Mail": true, "Form": true, "Combo": true,
}

// ValidOutreachMethods is the canonical set of accepted outreach action methods.
var ValidOutreachMethods = map[string]bool{
	"Call": true, "Email": true, "Mail": true, "Meeting": true, "Other": true,
}

// ValidOutcomeStatuses is the canonical set of accepted outreach outcome statuses.
var ValidOutcomeStatuses = map[string]bool{
	"None": true, "Waiting": true, "Positive": true, "Negative": true,
	"ReferredElsewhere": true,
}

// ValidFollowUpStatuses is the canonical set of accepted follow-up statuses.
var ValidFollowUpStatuses = map[string]bool{
	"Open": true, "Completed": true, "Cancelled": true,
}

// ValidFinalStatuses is the canonical set of accepted outcome record final statuses.
var ValidFinalStatuses = map[string]bool{
	"NoResponse": true, "Declined": true, "NotFit": true,
	"CompletedHelp": true, "Other": true,
}
