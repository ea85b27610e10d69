package repository

import (
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

func mapSlice[S, D any](in []S, f func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}

	return out
}

func profileToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func personToDomain(p dao.Person) domain.Person {
	person := domain.Person{
		ID:        p.ID,
		FullName:  p.FullName,
		CPF:       p.CPF,
		Email:     p.Email,
		Phone:     p.Phone,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		ProfileID: p.ProfileID,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Profile != nil {
		profile := profileToDomain(*p.Profile)
		person.Profile = &profile
	}

	return person
}

func personToDAO(p domain.Person) dao.Person {
	return dao.Person{
		ID:        p.ID,
		FullName:  p.FullName,
		CPF:       p.CPF,
		Email:     p.Email,
		Phone:     p.Phone,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		ProfileID: p.ProfileID,
		Active:    p.Active,
	}
}

func cityToDomain(c dao.City) domain.City {
	city := domain.City{
		ID:       c.ID,
		StateID:  c.StateID,
		Name:     c.Name,
		IBGECode: c.IBGECode,
	}
	if c.State != nil {
		city.State = &domain.State{
			ID:        c.State.ID,
			CountryID: c.State.CountryID,
			UF:        c.State.UF,
			Name:      c.State.Name,
		}
	}

	return city
}

func addressToDomain(a dao.Address) domain.Address {
	address := domain.Address{
		ID:         a.ID,
		PersonID:   a.PersonID,
		CityID:     a.CityID,
		ZipCode:    a.ZipCode,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		IsPrimary:  a.IsPrimary,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.City != nil {
		city := cityToDomain(*a.City)
		address.City = &city
	}

	return address
}

func addressToDAO(a domain.Address) dao.Address {
	return dao.Address{
		ID:         a.ID,
		PersonID:   a.PersonID,
		CityID:     a.CityID,
		ZipCode:    a.ZipCode,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		IsPrimary:  a.IsPrimary,
	}
}

func missionCategoryToDomain(c dao.MissionCategory) domain.MissionCategory {
	return domain.MissionCategory{ID: c.ID, Name: c.Name, Description: c.Description, Icon: c.Icon}
}

func newsCategoryToDomain(c dao.NewsCategory) domain.NewsCategory {
	return domain.NewsCategory{ID: c.ID, Name: c.Name, Description: c.Description}
}

func itemTypeToDomain(t dao.ItemType) domain.ItemType {
	return domain.ItemType{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Unit:        t.Unit,
		Category:    t.Category,
	}
}

func volunteerToDomain(v dao.Volunteer) domain.Volunteer {
	volunteer := domain.Volunteer{
		ID:                    v.ID,
		PersonID:              v.PersonID,
		Education:             v.Education,
		Profession:            v.Profession,
		Skills:                v.Skills,
		Availability:          v.Availability,
		EmergencyExperience:   v.EmergencyExperience,
		DriverLicenseCategory: v.DriverLicenseCategory,
		HasVehicle:            v.HasVehicle,
		Status:                domain.VolunteerStatus(v.Status),
		ApprovedAt:            v.ApprovedAt,
		Note:                  v.Note,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
	if v.Person != nil {
		person := personToDomain(*v.Person)
		volunteer.Person = &person
	}

	return volunteer
}

func volunteerToDAO(v domain.Volunteer) dao.Volunteer {
	return dao.Volunteer{
		ID:                    v.ID,
		PersonID:              v.PersonID,
		Education:             v.Education,
		Profession:            v.Profession,
		Skills:                v.Skills,
		Availability:          v.Availability,
		EmergencyExperience:   v.EmergencyExperience,
		DriverLicenseCategory: v.DriverLicenseCategory,
		HasVehicle:            v.HasVehicle,
		Status:                string(v.Status),
		ApprovedAt:            v.ApprovedAt,
		Note:                  v.Note,
	}
}

func missionToDomain(m dao.Mission) domain.Mission {
	mission := domain.Mission{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		MeetingPoint: m.MeetingPoint,
		CityID:       m.CityID,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		StartsAt:     m.StartsAt,
		EndsAt:       m.EndsAt,
		TotalSlots:   m.TotalSlots,
		FilledSlots:  m.FilledSlots,
		Status:       domain.MissionStatus(m.Status),
		CreatorID:    m.CreatorID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Category != nil {
		category := missionCategoryToDomain(*m.Category)
		mission.Category = &category
	}

	return mission
}

func missionToDAO(m domain.Mission) dao.Mission {
	return dao.Mission{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		MeetingPoint: m.MeetingPoint,
		CityID:       m.CityID,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		StartsAt:     m.StartsAt,
		EndsAt:       m.EndsAt,
		TotalSlots:   m.TotalSlots,
		FilledSlots:  m.FilledSlots,
		Status:       string(m.Status),
		CreatorID:    m.CreatorID,
	}
}

func applicationToDomain(a dao.MissionApplication) domain.MissionApplication {
	application := domain.MissionApplication{
		ID:          a.ID,
		MissionID:   a.MissionID,
		VolunteerID: a.VolunteerID,
		Status:      domain.ApplicationStatus(a.Status),
		AppliedAt:   a.AppliedAt,
		ApprovedAt:  a.ApprovedAt,
		CompletedAt: a.CompletedAt,
		Rating:      a.Rating,
		ReviewNote:  a.ReviewNote,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Mission != nil {
		mission := missionToDomain(*a.Mission)
		application.Mission = &mission
	}
	if a.Volunteer != nil {
		volunteer := volunteerToDomain(*a.Volunteer)
		application.Volunteer = &volunteer
	}

	return application
}

func applicationToDAO(a domain.MissionApplication) dao.MissionApplication {
	return dao.MissionApplication{
		ID:          a.ID,
		MissionID:   a.MissionID,
		VolunteerID: a.VolunteerID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		ApprovedAt:  a.ApprovedAt,
		CompletedAt: a.CompletedAt,
		Rating:      a.Rating,
		ReviewNote:  a.ReviewNote,
	}
}

func newsImageToDomain(i dao.NewsImage) domain.NewsImage {
	return domain.NewsImage{
		ID:         i.ID,
		NewsID:     i.NewsID,
		URL:        i.URL,
		Caption:    i.Caption,
		Position:   i.Position,
		IsPrimary:  i.IsPrimary,
		UploadedAt: i.UploadedAt,
	}
}

func newsImageToDAO(i domain.NewsImage) dao.NewsImage {
	return dao.NewsImage{
		ID:         i.ID,
		NewsID:     i.NewsID,
		URL:        i.URL,
		Caption:    i.Caption,
		Position:   i.Position,
		IsPrimary:  i.IsPrimary,
		UploadedAt: i.UploadedAt,
	}
}

func newsToDomain(n dao.News) domain.News {
	news := domain.News{
		ID:          n.ID,
		Title:       n.Title,
		Subtitle:    n.Subtitle,
		Content:     n.Content,
		CategoryID:  n.CategoryID,
		AuthorID:    n.AuthorID,
		Highlighted: n.Highlighted,
		Status:      domain.NewsStatus(n.Status),
		PublishedAt: n.PublishedAt,
		ViewCount:   n.ViewCount,
		Images:      mapSlice(n.Images, newsImageToDomain),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Category != nil {
		category := newsCategoryToDomain(*n.Category)
		news.Category = &category
	}

	return news
}

func newsToDAO(n domain.News) dao.News {
	return dao.News{
		ID:          n.ID,
		Title:       n.Title,
		Subtitle:    n.Subtitle,
		Content:     n.Content,
		CategoryID:  n.CategoryID,
		AuthorID:    n.AuthorID,
		Highlighted: n.Highlighted,
		Status:      string(n.Status),
		PublishedAt: n.PublishedAt,
		ViewCount:   n.ViewCount,
	}
}

func collectionPointToDomain(p dao.CollectionPoint) domain.CollectionPoint {
	point := domain.CollectionPoint{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CityID:       p.CityID,
		Address:      p.Address,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Phone:        p.Phone,
		OpeningHours: p.OpeningHours,
		ManagerName:  p.ManagerName,
		ManagerPhone: p.ManagerPhone,
		Active:       p.Active,
		CreatorID:    p.CreatorID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.City != nil {
		city := cityToDomain(*p.City)
		point.City = &city
	}

	return point
}

func collectionPointToDAO(p domain.CollectionPoint) dao.CollectionPoint {
	return dao.CollectionPoint{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CityID:       p.CityID,
		Address:      p.Address,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Phone:        p.Phone,
		OpeningHours: p.OpeningHours,
		ManagerName:  p.ManagerName,
		ManagerPhone: p.ManagerPhone,
		Active:       p.Active,
		CreatorID:    p.CreatorID,
	}
}

func needToDomain(n dao.Need) domain.Need {
	need := domain.Need{
		ID:                n.ID,
		CollectionPointID: n.CollectionPointID,
		ItemTypeID:        n.ItemTypeID,
		QuantityNeeded:    n.QuantityNeeded,
		QuantityReceived:  n.QuantityReceived,
		Priority:          domain.Priority(n.Priority),
		Active:            n.Active,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
	if n.CollectionPoint != nil {
		point := collectionPointToDomain(*n.CollectionPoint)
		need.CollectionPoint = &point
	}
	if n.ItemType != nil {
		itemType := itemTypeToDomain(*n.ItemType)
		need.ItemType = &itemType
	}

	return need
}

func needToDAO(n domain.Need) dao.Need {
	return dao.Need{
		ID:                n.ID,
		CollectionPointID: n.CollectionPointID,
		ItemTypeID:        n.ItemTypeID,
		QuantityNeeded:    n.QuantityNeeded,
		QuantityReceived:  n.QuantityReceived,
		Priority:          string(n.Priority),
		Active:            n.Active,
	}
}

func donationItemToDomain(i dao.DonationItem) domain.DonationItem {
	item := domain.DonationItem{
		ID:         i.ID,
		DonationID: i.DonationID,
		ItemTypeID: i.ItemTypeID,
		Quantity:   i.Quantity,
		Note:       i.Note,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
	if i.ItemType != nil {
		itemType := itemTypeToDomain(*i.ItemType)
		item.ItemType = &itemType
	}

	return item
}

func donationItemToDAO(i domain.DonationItem) dao.DonationItem {
	return dao.DonationItem{
		ID:         i.ID,
		DonationID: i.DonationID,
		ItemTypeID: i.ItemTypeID,
		Quantity:   i.Quantity,
		Note:       i.Note,
	}
}

func donationToDomain(d dao.Donation) domain.Donation {
	donation := domain.Donation{
		ID:                d.ID,
		PersonID:          d.PersonID,
		CollectionPointID: d.CollectionPointID,
		Status:            domain.DonationStatus(d.Status),
		DonatedAt:         d.DonatedAt,
		DeliveredAt:       d.DeliveredAt,
		Note:              d.Note,
		Items:             mapSlice(d.Items, donationItemToDomain),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.Person != nil {
		person := personToDomain(*d.Person)
		donation.Person = &person
	}
	if d.CollectionPoint != nil {
		point := collectionPointToDomain(*d.CollectionPoint)
		donation.CollectionPoint = &point
	}

	return donation
}

func donationToDAO(d domain.Donation) dao.Donation {
	return dao.Donation{
		ID:                d.ID,
		PersonID:          d.PersonID,
		CollectionPointID: d.CollectionPointID,
		Status:            string(d.Status),
		DonatedAt:         d.DonatedAt,
		DeliveredAt:       d.DeliveredAt,
		Note:              d.Note,
	}
}
