package directory

// Default returns the built-in clinic directory.
func Default() *Directory {
	return &Directory{
		Specialties: []Specialty{
			{Name: "Cardiology", Doctors: []Doctor{
				{Name: "Dr. Somasekar", Email: "somasekar@example.com"},
				{Name: "Dr. Poovarasan", Email: "poovarasan@example.com"},
			}},
			{Name: "Neurology", Doctors: []Doctor{
				{Name: "Dr. Anjali Sharma", Email: "anjali.sharma@example.com"},
				{Name: "Dr. Vikram Patel", Email: "vikram.patel@example.com"},
			}},
			{Name: "Pulmonology", Doctors: []Doctor{
				{Name: "Dr. Priya Menon", Email: "priya.menon@example.com"},
				{Name: "Dr. Sanjay Gupta", Email: "sanjay.gupta@example.com"},
			}},
			{Name: "Gastroenterology", Doctors: []Doctor{
				{Name: "Dr. Rajesh Nair", Email: "rajesh.nair@example.com"},
				{Name: "Dr. Meena Iyer", Email: "meena.iyer@example.com"},
			}},
			{Name: "Nephrology", Doctors: []Doctor{
				{Name: "Dr. Arjun Reddy", Email: "arjun.reddy@example.com"},
				{Name: "Dr. Lakshmi Rao", Email: "lakshmi.rao@example.com"},
			}},
			{Name: "Endocrinology", Doctors: []Doctor{
				{Name: "Dr. Kavita Desai", Email: "kavita.desai@example.com"},
				{Name: "Dr. Mohan Kumar", Email: "mohan.kumar@example.com"},
			}},
			{Name: "Oncology", Doctors: []Doctor{
				{Name: "Dr. Siddharth Bose", Email: "siddharth.bose@example.com"},
				{Name: "Dr. Nisha Verma", Email: "nisha.verma@example.com"},
			}},
			{Name: "Hematology", Doctors: []Doctor{
				{Name: "Dr. Anil Kapoor", Email: "anil.kapoor@example.com"},
				{Name: "Dr. Sunita Pillai", Email: "sunita.pillai@example.com"},
			}},
			{Name: "Dermatology", Doctors: []Doctor{
				{Name: "Dr. Riya Sen", Email: "riya.sen@example.com"},
				{Name: "Dr. Amitabh Das", Email: "amitabh.das@example.com"},
			}},
			{Name: "Psychiatry", Doctors: []Doctor{
				{Name: "Dr. Shalini Mehta", Email: "shalini.mehta@example.com"},
				{Name: "Dr. Rohan Joshi", Email: "rohan.joshi@example.com"},
			}},
		},
		TimeSlots: []string{"10:00 AM", "1:00 PM", "2:00 PM", "3:00 PM"},
	}
}
