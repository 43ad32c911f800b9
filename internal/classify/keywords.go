package classify

var greetingKeywords = []string{
	"hello", "hi", "hey", "greetings", "good morning", "good afternoon",
	"good evening", "howdy", "yo", "hola",
}

var appointmentPhrases = []string{
	"book appointment", "schedule appointment", "make appointment",
	"book a visit", "schedule a visit", "arrange appointment",
	"need to see a doctor", "want to see a doctor", "book with doctor",
	"schedule with doctor", "appointment with doctor", "see a specialist",
	"visit a doctor", "consult a doctor", "meet a doctor",
}

// medicalKeywords spans symptoms, conditions, procedures and anatomy.
var medicalKeywords = []string{
	"symptom", "disease", "condition", "treatment", "medication", "diagnosis",
	"pain", "fever", "infection", "injury", "surgery", "therapy", "health",
	"illness", "doctor", "hospital", "medicine", "prescription", "allergy",
	"chronic", "acute", "virus", "bacteria", "cancer", "diabetes", "heart",
	"blood", "pressure", "stroke", "asthma", "arthritis", "mental", "depression",
	"anxiety", "vaccine", "immune", "flu", "cold", "cough", "headache", "migraine",
	"nausea", "fatigue", "rash", "swelling", "inflammation", "bleeding", "bruise",
	"fracture", "sprain", "strain", "tumor", "ulcer", "seizure", "dizziness",
	"shortness", "breath", "chest", "abdomen", "kidney", "liver", "lung",
	"thyroid", "hormone", "insulin", "cholesterol", "allergic", "reaction",
	"antibiotics", "antiviral", "painkiller", "syringe", "injection", "scan",
	"xray", "mri", "ultrasound", "biopsy", "chemotherapy", "radiation", "dialysis",
	"transplant", "system", "autoimmune", "rheumatoid", "psoriasis",
	"eczema", "hypertension", "hypotension", "anemia", "leukemia", "lymphoma",
	"epilepsy", "parkinson", "alzheimer", "concussion", "obesity", "malnutrition",
	"vitamin", "deficiency", "legs pain", "hand pain", "back pain", "knee pain",
	"eyes related problem", "eye pain", "vision loss", "blurred vision", "glaucoma",
	"cataract", "conjunctivitis", "dry eyes", "retina", "cornea", "neck pain",
	"shoulder pain", "elbow pain", "wrist pain", "hip pain", "ankle pain",
	"foot pain", "joint pain", "muscle pain", "numbness", "tingling", "cramp",
	"spasm", "stiffness", "sciatica", "tendonitis", "bursitis", "gout",
	"osteoporosis", "scoliosis", "hernia", "disc slip", "sinus", "sinusitis",
	"sore throat", "tonsillitis", "laryngitis", "bronchitis", "pneumonia",
	"tuberculosis", "emphysema", "copd", "gastritis", "acid reflux", "gerd",
	"constipation", "diarrhea", "ibs", "crohn", "colitis", "appendicitis",
	"gallstone", "pancreatitis", "hepatitis", "cirrhosis", "bladder", "uti",
	"kidney stone", "prostate", "incontinence", "menopause", "pms", "endometriosis",
	"fibroid", "infertility", "erectile", "dysfunction", "std", "hiv", "herpes",
	"hpv", "syphilis", "gonorrhea", "chlamydia", "acne", "rosacea", "dandruff",
	"alopecia", "hives", "warts", "mole", "melanoma", "basal cell", "squamous",
	"psoriatic", "lupus", "scleroderma", "vitiligo", "insomnia", "sleep apnea",
	"narcolepsy", "restless legs", "phobia", "ocd", "ptsd", "bipolar", "schizophrenia",
	"addiction", "detox", "rehab", "anorexia", "bulimia", "binge eating", "vertigo",
	"tinnitus", "hearing loss", "ear infection", "meningitis", "encephalitis",
	"hydrocephalus", "aneurysm", "hemorrhage", "clot", "angina", "arrhythmia",
	"cardiomyopathy", "stent", "bypass", "pacemaker", "endoscopy", "colonoscopy",
	"mammogram", "pap smear", "prostate exam", "blood test", "urine test",
	"stool test", "ecg", "eeg", "ct scan", "pet scan", "ventilator", "oxygen therapy",
}
