package validation

// EmployeeSchema lists every employee form field. Paths without a rule are
// accepted as entered.
var EmployeeSchema = NewSchema("employee",
	Field{Path: "name", Rule: Chain(
		Required("Name is required"),
		MinLength(MinNameLength, "Name must be at least 3 characters"),
	)},
	Field{Path: "uniqueId", Rule: Required("Employee ID is required")},
	Field{Path: "age", Rule: Chain(
		Present("Age is required"),
		Number("Age must be a number",
			Whole("Age must be a whole number"),
			AtLeast(MinAge, "Minimum age is 18"),
			AtMost(MaxAge, "Maximum age is 60"),
		),
	)},
	Field{Path: "email", Rule: Chain(
		Required("Email is required"),
		Matches(EmailPattern, "Invalid email format"),
	)},
	Field{Path: "qualification", Rule: Required("This field is required")},
	Field{Path: "role", Rule: Required("This field is required")},
	Field{Path: "department", Rule: Required("This field is required")},
	Field{Path: "joiningDate", Rule: Present("Joining date is required")},
	Field{Path: "experience"},
	Field{Path: "phoneNumber", Rule: Chain(
		Present("Phone number is required"),
		Matches(PhonePattern, "Phone number must be 10 digits"),
	)},
	Field{Path: "alternatePhoneNumber", Rule: Optional(
		Matches(PhonePattern, "Alternate phone must be 10 digits"),
	)},
	Field{Path: "salary", Rule: Chain(
		Present("Salary is required"),
		Number("Salary must be a number",
			AtLeast(0, "Salary cannot be negative"),
		),
	)},
	Field{Path: "bloodGroup"},
	Field{Path: "skills"},
	Field{Path: "isActive"},
	Field{Path: "isStayingCompanyRoom"},
	Field{Path: "isUsingCompanySystem"},
	Field{Path: "systemNumber"},
	Field{Path: "profilePicture"},
	Field{Path: "resumeImage"},
	Field{Path: "certificateImage"},

	Field{Path: "address.street"},
	Field{Path: "address.district"},
	Field{Path: "address.area"},
	Field{Path: "address.landmark"},
	Field{Path: "address.state"},
	Field{Path: "address.pincode", Rule: Optional(
		Matches(PincodePattern, "Pincode must be 6 digits"),
	)},

	Field{Path: "emergencyContact.name"},
	Field{Path: "emergencyContact.relationship"},
	Field{Path: "emergencyContact.phoneNumber", Rule: Chain(
		Present("Emergency phone is required"),
		Matches(PhonePattern, "Emergency phone must be 10 digits"),
	)},
	Field{Path: "emergencyContact.alternatePhoneNumber"},

	Field{Path: "bankDetails.bankName"},
	Field{Path: "bankDetails.bankAccountNumber", Rule: Optional(
		Matches(BankAccountPattern, "Account number must be 9-18 digits"),
	)},
	Field{Path: "bankDetails.IFSC_Code", Rule: Optional(
		Matches(IFSCPattern, "Invalid IFSC format (e.g., ABCD0123456)"),
	)},
	Field{Path: "bankDetails.gpay"},
	Field{Path: "bankDetails.phonepay"},
	Field{Path: "bankDetails.upiId"},
)

// SystemSchema lists every system form field. Only the system number is checked.
var SystemSchema = NewSchema("system",
	Field{Path: "systemName"},
	Field{Path: "systemNumber", Rule: Required("System number is required")},
	Field{Path: "invoiceNo"},
	Field{Path: "invoiceDate"},
	Field{Path: "warranty"},
	Field{Path: "warrantyExpiryDate"},
	Field{Path: "isActive"},
	Field{Path: "processor"},
	Field{Path: "motherboard"},
	Field{Path: "ram"},
	Field{Path: "Storage"},
	Field{Path: "graphicsCard"},
	Field{Path: "operatingSystem"},
	Field{Path: "antivirus"},
	Field{Path: "cabinet"},
	Field{Path: "monitor"},
	Field{Path: "keyboard"},
	Field{Path: "mouse"},
	Field{Path: "password"},
	Field{Path: "wifi_Dongle"},

	Field{Path: "serialNo.processer"},
	Field{Path: "serialNo.motherboard"},
	Field{Path: "serialNo.storage"},
	Field{Path: "serialNo.cabinet"},
	Field{Path: "serialNo.display"},
	Field{Path: "serialNo.keyboard"},
	Field{Path: "serialNo.mouse"},
)
