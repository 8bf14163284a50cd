package vatsim

// aircraftTypes maps ICAO type designators onto reference records.
// The set covers the types seen on the network often enough to
// matter; an unknown designator simply leaves the pilot untyped.
var aircraftTypes = map[string]Aircraft{
	"A19N": {Name: "A-319neo", Description: "L2J", WTC: "M", WTG: "C", Designator: "A19N", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A20N": {Name: "A-320neo", Description: "L2J", WTC: "M", WTG: "C", Designator: "A20N", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A21N": {Name: "A-321neo", Description: "L2J", WTC: "M", WTG: "C", Designator: "A21N", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A306": {Name: "A-300B4-600", Description: "L2J", WTC: "H", WTG: "E", Designator: "A306", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A310": {Name: "A-310", Description: "L2J", WTC: "H", WTG: "E", Designator: "A310", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A318": {Name: "A-318", Description: "L2J", WTC: "M", WTG: "C", Designator: "A318", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A319": {Name: "A-319", Description: "L2J", WTC: "M", WTG: "C", Designator: "A319", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A320": {Name: "A-320", Description: "L2J", WTC: "M", WTG: "C", Designator: "A320", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A321": {Name: "A-321", Description: "L2J", WTC: "M", WTG: "C", Designator: "A321", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A332": {Name: "A-330-200", Description: "L2J", WTC: "H", WTG: "E", Designator: "A332", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A333": {Name: "A-330-300", Description: "L2J", WTC: "H", WTG: "E", Designator: "A333", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A339": {Name: "A-330-900neo", Description: "L2J", WTC: "H", WTG: "E", Designator: "A339", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A342": {Name: "A-340-200", Description: "L4J", WTC: "H", WTG: "E", Designator: "A342", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 4, EngineType: "Jet"},
	"A343": {Name: "A-340-300", Description: "L4J", WTC: "H", WTG: "E", Designator: "A343", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 4, EngineType: "Jet"},
	"A346": {Name: "A-340-600", Description: "L4J", WTC: "H", WTG: "E", Designator: "A346", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 4, EngineType: "Jet"},
	"A359": {Name: "A-350-900", Description: "L2J", WTC: "H", WTG: "E", Designator: "A359", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A35K": {Name: "A-350-1000", Description: "L2J", WTC: "H", WTG: "E", Designator: "A35K", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"A388": {Name: "A-380-800", Description: "L4J", WTC: "J", WTG: "F", Designator: "A388", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 4, EngineType: "Jet"},
	"AT72": {Name: "ATR-72", Description: "L2T", WTC: "M", WTG: "C", Designator: "AT72", ManufacturerCode: "ATR", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"AT76": {Name: "ATR-72-600", Description: "L2T", WTC: "M", WTG: "C", Designator: "AT76", ManufacturerCode: "ATR", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"B190": {Name: "1900", Description: "L2T", WTC: "L", WTG: "B", Designator: "B190", ManufacturerCode: "BEECH", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"B38M": {Name: "737 MAX 8", Description: "L2J", WTC: "M", WTG: "C", Designator: "B38M", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B39M": {Name: "737 MAX 9", Description: "L2J", WTC: "M", WTG: "C", Designator: "B39M", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B712": {Name: "717-200", Description: "L2J", WTC: "M", WTG: "C", Designator: "B712", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B733": {Name: "737-300", Description: "L2J", WTC: "M", WTG: "C", Designator: "B733", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B734": {Name: "737-400", Description: "L2J", WTC: "M", WTG: "C", Designator: "B734", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B735": {Name: "737-500", Description: "L2J", WTC: "M", WTG: "C", Designator: "B735", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B736": {Name: "737-600", Description: "L2J", WTC: "M", WTG: "C", Designator: "B736", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B737": {Name: "737-700", Description: "L2J", WTC: "M", WTG: "C", Designator: "B737", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B738": {Name: "737-800", Description: "L2J", WTC: "M", WTG: "C", Designator: "B738", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B739": {Name: "737-900", Description: "L2J", WTC: "M", WTG: "C", Designator: "B739", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B744": {Name: "747-400", Description: "L4J", WTC: "H", WTG: "F", Designator: "B744", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 4, EngineType: "Jet"},
	"B748": {Name: "747-8", Description: "L4J", WTC: "H", WTG: "F", Designator: "B748", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 4, EngineType: "Jet"},
	"B752": {Name: "757-200", Description: "L2J", WTC: "M", WTG: "D", Designator: "B752", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B753": {Name: "757-300", Description: "L2J", WTC: "M", WTG: "D", Designator: "B753", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B762": {Name: "767-200", Description: "L2J", WTC: "H", WTG: "E", Designator: "B762", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B763": {Name: "767-300", Description: "L2J", WTC: "H", WTG: "E", Designator: "B763", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B764": {Name: "767-400", Description: "L2J", WTC: "H", WTG: "E", Designator: "B764", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B772": {Name: "777-200", Description: "L2J", WTC: "H", WTG: "F", Designator: "B772", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B773": {Name: "777-300", Description: "L2J", WTC: "H", WTG: "F", Designator: "B773", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B77L": {Name: "777-200LR", Description: "L2J", WTC: "H", WTG: "F", Designator: "B77L", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B77W": {Name: "777-300ER", Description: "L2J", WTC: "H", WTG: "F", Designator: "B77W", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B788": {Name: "787-8", Description: "L2J", WTC: "H", WTG: "E", Designator: "B788", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B789": {Name: "787-9", Description: "L2J", WTC: "H", WTG: "E", Designator: "B789", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"B78X": {Name: "787-10", Description: "L2J", WTC: "H", WTG: "E", Designator: "B78X", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"BCS1": {Name: "A-220-100", Description: "L2J", WTC: "M", WTG: "C", Designator: "BCS1", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"BCS3": {Name: "A-220-300", Description: "L2J", WTC: "M", WTG: "C", Designator: "BCS3", ManufacturerCode: "AIRBUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"BE20": {Name: "Super King Air 200", Description: "L2T", WTC: "L", WTG: "B", Designator: "BE20", ManufacturerCode: "BEECH", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"BE36": {Name: "Bonanza 36", Description: "L1P", WTC: "L", WTG: "A", Designator: "BE36", ManufacturerCode: "BEECH", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"BE58": {Name: "Baron 58", Description: "L2P", WTC: "L", WTG: "A", Designator: "BE58", ManufacturerCode: "BEECH", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Piston"},
	"C152": {Name: "152", Description: "L1P", WTC: "L", WTG: "A", Designator: "C152", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"C172": {Name: "Skyhawk 172", Description: "L1P", WTC: "L", WTG: "A", Designator: "C172", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"C182": {Name: "Skylane 182", Description: "L1P", WTC: "L", WTG: "A", Designator: "C182", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"C208": {Name: "208 Caravan", Description: "L1T", WTC: "L", WTG: "B", Designator: "C208", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Turboprop/Turboshaft"},
	"C25A": {Name: "Citation CJ2", Description: "L2J", WTC: "L", WTG: "B", Designator: "C25A", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"C310": {Name: "310", Description: "L2P", WTC: "L", WTG: "A", Designator: "C310", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Piston"},
	"C510": {Name: "Citation Mustang", Description: "L2J", WTC: "L", WTG: "B", Designator: "C510", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"C56X": {Name: "Citation Excel", Description: "L2J", WTC: "M", WTG: "B", Designator: "C56X", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"C700": {Name: "Citation Longitude", Description: "L2J", WTC: "M", WTG: "B", Designator: "C700", ManufacturerCode: "CESSNA", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"CRJ2": {Name: "Regional Jet CRJ-200", Description: "L2J", WTC: "M", WTG: "C", Designator: "CRJ2", ManufacturerCode: "BOMBARDIER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"CRJ7": {Name: "Regional Jet CRJ-700", Description: "L2J", WTC: "M", WTG: "C", Designator: "CRJ7", ManufacturerCode: "BOMBARDIER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"CRJ9": {Name: "Regional Jet CRJ-900", Description: "L2J", WTC: "M", WTG: "C", Designator: "CRJ9", ManufacturerCode: "BOMBARDIER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"CRJX": {Name: "Regional Jet CRJ-1000", Description: "L2J", WTC: "M", WTG: "C", Designator: "CRJX", ManufacturerCode: "BOMBARDIER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"DA40": {Name: "DA-40 Diamond Star", Description: "L1P", WTC: "L", WTG: "A", Designator: "DA40", ManufacturerCode: "DIAMOND", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"DA42": {Name: "DA-42 Twin Star", Description: "L2P", WTC: "L", WTG: "A", Designator: "DA42", ManufacturerCode: "DIAMOND", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Piston"},
	"DA62": {Name: "DA-62", Description: "L2P", WTC: "L", WTG: "A", Designator: "DA62", ManufacturerCode: "DIAMOND", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Piston"},
	"DH8D": {Name: "DHC-8-400 Dash 8", Description: "L2T", WTC: "M", WTG: "C", Designator: "DH8D", ManufacturerCode: "DE HAVILLAND CANADA", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"E135": {Name: "ERJ-135", Description: "L2J", WTC: "M", WTG: "B", Designator: "E135", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E145": {Name: "ERJ-145", Description: "L2J", WTC: "M", WTG: "B", Designator: "E145", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E170": {Name: "ERJ-170-100", Description: "L2J", WTC: "M", WTG: "C", Designator: "E170", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E190": {Name: "ERJ-190-100", Description: "L2J", WTC: "M", WTG: "C", Designator: "E190", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E195": {Name: "ERJ-190-200", Description: "L2J", WTC: "M", WTG: "C", Designator: "E195", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E290": {Name: "ERJ-190-300 E2", Description: "L2J", WTC: "M", WTG: "C", Designator: "E290", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E295": {Name: "ERJ-190-400 E2", Description: "L2J", WTC: "M", WTG: "C", Designator: "E295", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"E75L": {Name: "ERJ-170-200 (winglets)", Description: "L2J", WTC: "M", WTG: "C", Designator: "E75L", ManufacturerCode: "EMBRAER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"F900": {Name: "Falcon 900", Description: "L3J", WTC: "M", WTG: "B", Designator: "F900", ManufacturerCode: "DASSAULT", AircraftType: "LandPlane", EngineCount: 3, EngineType: "Jet"},
	"GLEX": {Name: "Global Express", Description: "L2J", WTC: "M", WTG: "C", Designator: "GLEX", ManufacturerCode: "BOMBARDIER", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"GLF6": {Name: "Gulfstream G650", Description: "L2J", WTC: "M", WTG: "C", Designator: "GLF6", ManufacturerCode: "GULFSTREAM AEROSPACE", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"H60":  {Name: "H-60 Black Hawk", Description: "H2T", WTC: "M", WTG: "B", Designator: "H60", ManufacturerCode: "SIKORSKY", AircraftType: "Helicopter", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"MD11": {Name: "MD-11", Description: "L3J", WTC: "H", WTG: "E", Designator: "MD11", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 3, EngineType: "Jet"},
	"MD82": {Name: "MD-82", Description: "L2J", WTC: "M", WTG: "D", Designator: "MD82", ManufacturerCode: "BOEING", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"P28A": {Name: "PA-28 Cherokee", Description: "L1P", WTC: "L", WTG: "A", Designator: "P28A", ManufacturerCode: "PIPER", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"PC12": {Name: "PC-12", Description: "L1T", WTC: "L", WTG: "B", Designator: "PC12", ManufacturerCode: "PILATUS", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Turboprop/Turboshaft"},
	"PC24": {Name: "PC-24", Description: "L2J", WTC: "L", WTG: "B", Designator: "PC24", ManufacturerCode: "PILATUS", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Jet"},
	"SF34": {Name: "SF-340", Description: "L2T", WTC: "M", WTG: "B", Designator: "SF34", ManufacturerCode: "SAAB", AircraftType: "LandPlane", EngineCount: 2, EngineType: "Turboprop/Turboshaft"},
	"SF50": {Name: "Vision SF50", Description: "L1J", WTC: "L", WTG: "B", Designator: "SF50", ManufacturerCode: "CIRRUS", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Jet"},
	"SR22": {Name: "SR-22", Description: "L1P", WTC: "L", WTG: "A", Designator: "SR22", ManufacturerCode: "CIRRUS", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Piston"},
	"TBM9": {Name: "TBM-900", Description: "L1T", WTC: "L", WTG: "B", Designator: "TBM9", ManufacturerCode: "SOCATA", AircraftType: "LandPlane", EngineCount: 1, EngineType: "Turboprop/Turboshaft"},
}
