package fnol

import "fnoldesk/internal/domain/quality"

func optional(v string) *string { return &v }

func seedTestScripts(today string, newID func() string) []quality.TestScript {
	tested := func(script quality.TestScript, by string, notes string) quality.TestScript {
		script.TestedBy = optional(by)
		script.TestedDate = optional(today)
		script.Notes = optional(notes)
		return script
	}

	scripts := []quality.TestScript{
		tested(quality.TestScript{
			ScriptID:    "UAT-001",
			Title:       "Login as Call Center Rep",
			Description: "Verify call center representative can successfully log into the system",
			Steps: []string{
				"Navigate to login page",
				"Enter valid username and password",
				"Click 'Login' button",
				"Verify dashboard loads successfully",
			},
			ExpectedResult: "User is logged in and redirected to the main dashboard",
			Status:         quality.ScriptPass,
		}, "QA Team", "Completed successfully"),
		tested(quality.TestScript{
			ScriptID:    "UAT-002",
			Title:       "Auto-Route Windshield Claim",
			Description: "Verify windshield claims are automatically routed to Glass Repair department",
			Steps: []string{
				"Log in as Call Center Rep",
				"Input mock claim data for a broken windshield",
				"Submit the claim",
				"Verify system routes ticket to Glass Repair department",
			},
			ExpectedResult: "Claim is automatically assigned to Glass Repair queue within 2 minutes",
			Status:         quality.ScriptPass,
		}, "QA Team", "Routed correctly in 45 seconds"),
		{
			ScriptID:    "UAT-003",
			Title:       "High-Value Claim Escalation",
			Description: "Verify claims over $15,000 are flagged for manual review",
			Steps: []string{
				"Create a new claim with amount > $15,000",
				"Submit the claim",
				"Verify claim is flagged as 'High Risk'",
				"Verify claim appears in supervisor review queue",
			},
			ExpectedResult: "Claim is correctly flagged and routed to supervisor queue",
			Status:         quality.ScriptNotStarted,
		},
		tested(quality.TestScript{
			ScriptID:    "UAT-004",
			Title:       "Regional Adjuster Assignment",
			Description: "Verify claims are assigned to nearest regional adjuster based on zip code",
			Steps: []string{
				"Input a claim with zip code 10001 (Northeast)",
				"Submit the claim",
				"Verify adjuster assigned is from Northeast region",
				"Check assignment timestamp is within 2 minutes",
			},
			ExpectedResult: "Correct regional adjuster assigned within SLA timeframe",
			Status:         quality.ScriptFail,
		}, "Operations Team", "Assignment took 5 minutes - exceeds 2 minute SLA"),
		{
			ScriptID:    "UAT-005",
			Title:       "Low Risk Auto-Approval",
			Description: "Verify minor fender-bender claims under $2,000 receive automated approval",
			Steps: []string{
				"Submit claim via mobile app",
				"Set claim type as 'Collision'",
				"Set amount under $2,000",
				"Verify system flags as 'Low Risk'",
				"Check for automated approval email",
			},
			ExpectedResult: "Claim bypasses manual review and customer receives approval email",
			Status:         quality.ScriptNotStarted,
		},
		{
			ScriptID:    "UAT-006",
			Title:       "Duplicate Claim Detection",
			Description: "Verify system detects and flags potential duplicate claims",
			Steps: []string{
				"Submit a claim for policyholder John Doe",
				"Submit another claim with same policy number within 24 hours",
				"Verify system flags potential duplicate",
				"Check alert is sent to fraud team",
			},
			ExpectedResult: "Duplicate claim is flagged and routed for review",
			Status:         quality.ScriptNotStarted,
		},
		tested(quality.TestScript{
			ScriptID:    "UAT-007",
			Title:       "KPI Dashboard Load",
			Description: "Verify KPI dashboard displays accurate real-time metrics",
			Steps: []string{
				"Navigate to KPI Dashboard",
				"Verify Average Resolution Time is calculated correctly",
				"Verify Auto-Route Success Rate matches database",
				"Verify Escalation Rate is accurate",
				"Check dashboard refresh interval",
			},
			ExpectedResult: "All KPIs display accurate data within 5% margin of error",
			Status:         quality.ScriptPass,
		}, "Analytics Team", "All metrics verified against database"),
		{
			ScriptID:    "UAT-008",
			Title:       "System Failover Test",
			Description: "Verify system handles automated routing failure gracefully",
			Steps: []string{
				"Simulate routing engine failure",
				"Submit new claim",
				"Verify claim enters manual queue",
				"Check alert notification sent to IT team",
				"Verify no data loss occurred",
			},
			ExpectedResult: "Claims gracefully fall back to manual processing",
			Status:         quality.ScriptNotStarted,
		},
	}
	for i := range scripts {
		scripts[i].ID = newID()
	}
	return scripts
}

func seedDefects(today string, newID func() string) []quality.Defect {
	return []quality.Defect{
		{
			ID:           newID(),
			DefectID:     "DEF-001",
			Title:        "Regional Assignment Exceeds SLA",
			Description:  "Adjuster assignment for Northeast region taking 5+ minutes instead of 2 minute SLA",
			Severity:     quality.SeverityHigh,
			Status:       quality.DefectInProgress,
			ReportedBy:   "Operations Team",
			AssignedTo:   optional("Development Team"),
			ReportedDate: today,
			TestScriptID: optional("UAT-004"),
		},
		{
			ID:           newID(),
			DefectID:     "DEF-002",
			Title:        "Email Template Formatting Issue",
			Description:  "Auto-approval emails showing HTML tags in plain text clients",
			Severity:     quality.SeverityLow,
			Status:       quality.DefectOpen,
			ReportedBy:   "QA Team",
			ReportedDate: today,
		},
	}
}

func seedRisks(newID func() string) []quality.Risk {
	return []quality.Risk{
		{
			ID:          newID(),
			RiskID:      "RISK-001",
			Title:       "Automated System Downtime",
			Description: "The automated routing system may experience unplanned downtime during peak hours",
			Probability: quality.LevelMedium,
			Impact:      quality.LevelHigh,
			MitigationSteps: []string{
				"Implement redundant routing servers",
				"Set up real-time monitoring alerts",
				"Create automated failover procedures",
				"Schedule maintenance during off-peak hours",
			},
			ContingencyPlan: "Immediately activate manual routing queue. Notify all call center staff via mass email and Slack. Assign additional supervisors to handle overflow. Track all manually processed claims for later system verification.",
			Owner:           "IT Operations",
			Status:          quality.RiskActive,
		},
		{
			ID:          newID(),
			RiskID:      "RISK-002",
			Title:       "Staff Training Gap",
			Description: "Call center staff may not fully understand the new software interface and routing logic",
			Probability: quality.LevelHigh,
			Impact:      quality.LevelMedium,
			MitigationSteps: []string{
				"Conduct mandatory training sessions for all staff",
				"Create quick reference guides and video tutorials",
				"Establish a dedicated support hotline for the first month",
				"Implement a buddy system pairing new users with power users",
			},
			ContingencyPlan: "Deploy floor support team to provide real-time assistance. Schedule emergency training sessions. Temporarily increase call handling time allowance by 30%. Create expedited feedback channel for common issues.",
			Owner:           "Training Department",
			Status:          quality.RiskActive,
		},
		{
			ID:          newID(),
			RiskID:      "RISK-003",
			Title:       "Data Migration Errors",
			Description: "Historical claims data may not map correctly to the new system schema",
			Probability: quality.LevelLow,
			Impact:      quality.LevelHigh,
			MitigationSteps: []string{
				"Perform comprehensive data validation before migration",
				"Run parallel systems for 2 weeks post-launch",
				"Create data reconciliation reports",
				"Maintain backup of legacy system",
			},
			ContingencyPlan: "Halt migration immediately if error rate exceeds 1%. Restore from last known good backup. Engage data engineering team for emergency remediation. Extend parallel run period as needed.",
			Owner:           "Data Engineering",
			Status:          quality.RiskMitigated,
		},
	}
}
