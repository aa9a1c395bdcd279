package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

// Default demo admin, used when no bootstrap credentials are configured.
const (
	DefaultAdminEmail    = "admin@gys.co.id"
	DefaultAdminPassword = "admin123"
)

// SeedOptions configures the demo admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// SeedResult reports what Seed inserted.
type SeedResult struct {
	MenusSeeded bool   `json:"menus_seeded"`
	DataSeeded  bool   `json:"data_seeded"`
	Message     string `json:"message"`
}

// SeedService loads demo content into an empty portal.
type SeedService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSeedService creates a SeedService.
func NewSeedService(gdb *gorm.DB) *SeedService {
	return &SeedService{db: gdb, now: time.Now}
}

type seedMenu struct {
	label    string
	path     string
	icon     string
	children []seedMenu
}

var defaultMenus = []seedMenu{
	{label: "Corporate Identity", icon: "building", children: []seedMenu{
		{label: "Corporate Overview", path: "/corporate/overview"},
		{label: "Corporate Philosophy", path: "/corporate/philosophy"},
		{label: "Corporate History & Group Structure", path: "/corporate/history"},
	}},
	{label: "Operational/Compliance", icon: "file-text", children: []seedMenu{
		{label: "Standard Operating Procedures", path: "/compliance/sop"},
		{label: "Company Policies", path: "/compliance/policies"},
		{label: "Safety Guidelines", path: "/compliance/safety"},
	}},
	{label: "Employee Services", icon: "users", children: []seedMenu{
		{label: "IT Global Services", path: "/services/it"},
		{label: "GYS Darwinbox", path: "/services/hr"},
		{label: "FA E-Asset", path: "/services/fa"},
	}},
	{label: "Communication", icon: "message-square", children: []seedMenu{
		{label: "News & Announcements", path: "/news"},
		{label: "Events Calendar", path: "/events"},
		{label: "Photo Gallery", path: "/gallery"},
	}},
}

// Seed inserts the default menus when the menu table is empty and the demo
// records when there is no news yet. Running it twice changes nothing.
func (s *SeedService) Seed(opts SeedOptions) (SeedResult, error) {
	var result SeedResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var menuCount int64
		if err := tx.Model(&db.MenuItem{}).Count(&menuCount).Error; err != nil {
			return err
		}
		if menuCount == 0 {
			if err := insertMenus(tx, defaultMenus, nil); err != nil {
				return fmt.Errorf("seed menus: %w", err)
			}
			result.MenusSeeded = true
		}

		var newsCount int64
		if err := tx.Model(&db.News{}).Count(&newsCount).Error; err != nil {
			return err
		}
		if newsCount > 0 {
			return nil
		}

		email := strings.TrimSpace(opts.AdminEmail)
		password := opts.AdminPassword
		if email == "" {
			email, password = DefaultAdminEmail, DefaultAdminPassword
		}
		if _, _, err := NewUserService(tx).EnsureAdmin(email, password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := s.insertDemoData(tx); err != nil {
			return err
		}
		result.DataSeeded = true
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	result.Message = "Data already seeded"
	if result.DataSeeded {
		result.Message = "Data seeded successfully"
	}
	return result, nil
}

func insertMenus(tx *gorm.DB, menus []seedMenu, parentID *uint) error {
	for i, m := range menus {
		item := db.MenuItem{
			Label:     m.label,
			Path:      m.path,
			Icon:      m.icon,
			ParentID:  parentID,
			SortOrder: i,
			IsVisible: true,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if len(m.children) > 0 {
			id := item.ID
			if err := insertMenus(tx, m.children, &id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SeedService) insertDemoData(tx *gorm.DB) error {
	now := s.now()

	news := []db.News{
		{Title: "PT GYS Achieves Record Production of 500,000 Metric Tons", Summary: "Our steel manufacturing plant has reached a historic milestone with record-breaking production figures in Q4 2025.", Content: "PT Garuda Yamato Steel proudly announces that our manufacturing facilities have achieved a record production of 500,000 metric tons of high-quality steel products in Q4 2025.", ImageURL: "https://images.unsplash.com/photo-1721745250213-c3e1a2f4eeeb?w=800", Category: "production", IsFeatured: true},
		{Title: "Safety First: 1000 Days Without Lost Time Incident", Summary: "GYS celebrates an outstanding safety milestone, reflecting our unwavering commitment to employee wellbeing.", Content: "We are proud to announce that PT Garuda Yamato Steel has achieved 1000 consecutive days without a lost time incident.", ImageURL: "https://images.unsplash.com/photo-1735494032948-14ef288fc9d3?w=800", Category: "safety"},
		{Title: "New Environmental Initiative: Carbon Neutral by 2030", Summary: "PT GYS announces ambitious sustainability goals with new green technology investments.", Content: "In line with our commitment to environmental sustainability, PT Garuda Yamato Steel has unveiled a comprehensive plan to achieve carbon neutrality by 2030.", ImageURL: "https://images.unsplash.com/photo-1720036236694-d0a231c52563?w=800", Category: "sustainability"},
		{Title: "Employee Excellence Awards 2025 Winners Announced", Summary: "Recognizing outstanding contributions from our dedicated team members across all departments.", Content: "The annual Employee Excellence Awards ceremony celebrated the remarkable achievements of our team members.", ImageURL: "https://images.unsplash.com/photo-1727504172743-08f14448fab8?w=800", Category: "hr"},
		{Title: "Strategic Partnership with Japanese Steel Giant", Summary: "PT GYS signs collaboration agreement with Nippon Steel for technology transfer and market expansion.", Content: "PT Garuda Yamato Steel has entered into a strategic partnership with Nippon Steel Corporation.", ImageURL: "https://images.unsplash.com/photo-1697281679290-ad7be1b10682?w=800", Category: "business"},
	}
	// Older items get earlier timestamps so the list keeps the seeded order.
	for i := range news {
		news[i].CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		news[i].UpdatedAt = news[i].CreatedAt
	}
	if err := tx.Create(&news).Error; err != nil {
		return fmt.Errorf("seed news: %w", err)
	}

	events := []db.Event{
		{Title: "Annual General Meeting 2026", Description: "Join us for the AGM to discuss company performance and future strategies.", EventDate: "2026-02-15", EventType: EventTypeEvent, Location: "Main Conference Hall"},
		{Title: "Chinese New Year Celebration", Description: "Company-wide celebration with traditional performances and lucky draw.", EventDate: "2026-01-29", EventType: EventTypeHoliday, Location: "Company Grounds"},
		{Title: "Safety Training Workshop", Description: "Mandatory safety training for all production floor employees.", EventDate: "2026-01-20", EventType: EventTypeEvent, Location: "Training Center"},
		{Title: "Ahmad Wijaya - Birthday", Description: "Happy Birthday to our Production Manager!", EventDate: "2026-01-18", EventType: EventTypeBirthday},
		{Title: "Independence Day Ceremony", Description: "National flag-raising ceremony followed by team building activities.", EventDate: "2026-08-17", EventType: EventTypeHoliday, Location: "Company Plaza"},
	}
	if err := tx.Create(&events).Error; err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	photos := []db.Photo{
		{Title: "Steel Production Line", Description: "Our state-of-the-art hot rolling mill in action", ImageURL: "https://images.unsplash.com/photo-1721745250213-c3e1a2f4eeeb?w=800", Category: "production"},
		{Title: "Quality Control Team", Description: "Our QC team ensuring the highest standards", ImageURL: "https://images.unsplash.com/photo-1735494032948-14ef288fc9d3?w=800", Category: "team"},
		{Title: "Factory Interior", Description: "Modern machinery in our main production facility", ImageURL: "https://images.unsplash.com/photo-1727504172743-08f14448fab8?w=800", Category: "facility"},
		{Title: "Steel Processing", Description: "High-temperature steel processing", ImageURL: "https://images.unsplash.com/photo-1697281679290-ad7be1b10682?w=800", Category: "production"},
		{Title: "Annual Company Gathering", Description: "Team bonding event 2025", ImageURL: "https://images.unsplash.com/photo-1720036236694-d0a231c52563?w=800", Category: "events"},
		{Title: "Warehouse Operations", Description: "Finished products ready for distribution", ImageURL: "https://images.unsplash.com/photo-1504917595217-d4dc5ebe6122?w=800", Category: "logistics"},
		{Title: "Safety First Initiative", Description: "Our dedicated safety team", ImageURL: "https://images.unsplash.com/photo-1581094794329-c8112a89af12?w=800", Category: "safety"},
		{Title: "Board Meeting", Description: "Executive leadership quarterly review", ImageURL: "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=800", Category: "corporate"},
	}
	if err := tx.Create(&photos).Error; err != nil {
		return fmt.Errorf("seed photos: %w", err)
	}

	employees := []db.Employee{
		{Name: "Budi Santoso", Email: "budi.santoso@gys.co.id", Department: "Production", Position: "Plant Director", Phone: "+62 812-3456-7890", AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150"},
		{Name: "Siti Rahayu", Email: "siti.rahayu@gys.co.id", Department: "Human Resources", Position: "HR Director", Phone: "+62 812-3456-7891", AvatarURL: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=150"},
		{Name: "Ahmad Wijaya", Email: "ahmad.wijaya@gys.co.id", Department: "Production", Position: "Production Manager", Phone: "+62 812-3456-7892", AvatarURL: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150"},
		{Name: "Dewi Lestari", Email: "dewi.lestari@gys.co.id", Department: "Finance", Position: "Finance Manager", Phone: "+62 812-3456-7893", AvatarURL: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150"},
		{Name: "Rudi Hartono", Email: "rudi.hartono@gys.co.id", Department: "IT", Position: "IT Manager", Phone: "+62 812-3456-7894", AvatarURL: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150"},
		{Name: "Maya Sari", Email: "maya.sari@gys.co.id", Department: "Quality Control", Position: "QC Supervisor", Phone: "+62 812-3456-7895", AvatarURL: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=150"},
		{Name: "Eko Prasetyo", Email: "eko.prasetyo@gys.co.id", Department: "Safety", Position: "Safety Officer", Phone: "+62 812-3456-7896", AvatarURL: "https://images.unsplash.com/photo-1519085360753-af0119f7cbe7?w=150"},
		{Name: "Linda Kusuma", Email: "linda.kusuma@gys.co.id", Department: "Marketing", Position: "Marketing Manager", Phone: "+62 812-3456-7897", AvatarURL: "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?w=150"},
	}
	if err := tx.Create(&employees).Error; err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	return nil
}
