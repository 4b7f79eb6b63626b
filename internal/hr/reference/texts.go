// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

// # Document Text

const (
	textNotProvided   = "Not provided"
	textStillEmployed = "Still employed"

	placeholderShort = "____________________"
	placeholderLine  = "______________________________________________________________________"

	sectionApplicant   = "Applicant Information"
	sectionReferee     = "Referee Information"
	sectionEmployment  = "Employment Details"
	sectionCharacter   = "Relationship to Applicant"
	sectionQualities   = "Character Qualities"
	sectionCriminal    = "Criminal Background Check"
	sectionComments    = "Additional Comments"
	sectionDeclaration = "Declaration"

	questionStatus      = "Is the applicant a current or previous employee?"
	questionAttendance  = "How would you rate the applicant's attendance?"
	questionRelation    = "In what capacity do you know the applicant?"
	questionLeaving     = "Reason for leaving:"
	questionOutsideWork = "Do you know this person outside of work or education?"
	questionQualities   = "Please tick the qualities that describe the applicant:"
	questionNotTicked   = "If you did not tick all of the qualities, please explain why:"
	questionDetails     = "If you answered yes to either question, please provide details:"

	questionConvictions = "Are you aware of any convictions, cautions, reprimands or final warnings " +
		"held by the applicant which are not \"protected\" as defined by the Rehabilitation of " +
		"Offenders Act 1974 (Exceptions) Order 1975 (as amended in 2013 and 2020)?"

	questionProceedings = "Are you aware of any criminal proceedings, police investigations or other " +
		"matters pending against the applicant which may make them unsuitable to work with " +
		"children or adults at risk, as defined by the Safeguarding Vulnerable Groups Act 2006?"

	textDeclaration = "I confirm that the information given in this reference is accurate and " +
		"complete to the best of my knowledge and belief. I understand that this reference may be " +
		"disclosed to the applicant under the UK General Data Protection Regulation and the Data " +
		"Protection Act 2018, and that it will be relied upon when assessing the applicant's " +
		"suitability for a position involving the care of vulnerable people."
)

// qualityLabels are printed two per row in this order.
var qualityLabels = [8]string{
	"Honest",
	"Trustworthy",
	"Reliable",
	"Punctual",
	"Polite",
	"Compassionate",
	"Hard working",
	"Team player",
}
