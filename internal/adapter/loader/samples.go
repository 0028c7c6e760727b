package loader

import "kbrag/internal/domain"

// sampleDocuments is the fallback content policy: a minimal bilingual HR
// knowledge base, enough for the assistant to answer common questions when no
// real documents have been provided yet.
func sampleDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:       "sample-leave-policy",
			Filename: "leave_policy.txt",
			Text: `[Page 1]
Annual Leave Policy

Annual leave is 21 working days per year for all full-time employees. Leave
requests must be submitted at least five working days in advance through the
HR portal. Unused leave days may be carried over to the next year, up to a
maximum of ten days.

[Page 2]
Sick Leave

Employees are entitled to 30 days of sick leave per year. The first 15 days
are at full pay and the remaining 15 days at half pay. A medical certificate
is required for any absence longer than two consecutive days.

سياسة الإجازات السنوية

الإجازة السنوية هي واحد وعشرون يوم عمل في السنة لجميع الموظفين بدوام كامل.
يجب تقديم طلبات الإجازة قبل خمسة أيام عمل على الأقل عبر بوابة الموارد البشرية.`,
		},
		{
			ID:       "sample-working-hours",
			Filename: "working_hours.txt",
			Text: `Working Hours

Standard working hours are from 9:00 to 17:30, Sunday through Thursday, with
a 30 minute lunch break. Remote work is available up to two days per week
with manager approval.

ساعات العمل

ساعات العمل الرسمية من التاسعة صباحا حتى الخامسة والنصف مساء، من الأحد إلى
الخميس. العمل عن بعد متاح حتى يومين في الأسبوع بموافقة المدير المباشر.`,
		},
		{
			ID:       "sample-benefits",
			Filename: "benefits.txt",
			Text: `Employee Benefits

All employees receive private health insurance covering themselves and their
immediate family. The company contributes to a pension plan after six months
of employment. An annual training budget of 1500 is available per employee
for professional development courses and certifications.`,
		},
	}
}
